package app

import (
	"fmt"
	"strconv"

	"yashubustudio/labelclean/labelclean"
)

type tableColumn struct {
	Title  string
	Width  float32
	Render func(labelclean.RawRecord, labelclean.ResultRecord) string
}

func resultColumns() []tableColumn {
	return []tableColumn{
		{Title: "#", Width: 60, Render: func(rec labelclean.RawRecord, _ labelclean.ResultRecord) string {
			return strconv.Itoa(rec.Index + 1)
		}},
		{Title: "入力", Width: 320, Render: func(rec labelclean.RawRecord, _ labelclean.ResultRecord) string {
			return rec.Text
		}},
		{Title: labelclean.KeyColumn, Width: 240, Render: func(_ labelclean.RawRecord, res labelclean.ResultRecord) string {
			return res.Key
		}},
		{Title: labelclean.CleanedColumn, Width: 240, Render: func(_ labelclean.RawRecord, res labelclean.ResultRecord) string {
			return res.Cleaned
		}},
		{Title: "状態", Width: 90, Render: func(_ labelclean.RawRecord, res labelclean.ResultRecord) string {
			return resolvedLabel(res)
		}},
	}
}

func resolvedLabel(res labelclean.ResultRecord) string {
	if res.Resolved {
		return "一致"
	}
	return "未登録"
}

func summaryText(s labelclean.Summary) string {
	return fmt.Sprintf("行数:%d / キー:%d / 一致:%d / 未登録:%d", s.Rows, s.Keys, s.Resolved, s.Unresolved)
}

func configSummaryText(cfg labelclean.Config, table *labelclean.CanonicalTable) string {
	column := cfg.TextColumn
	if column == "" {
		column = "自動"
	}
	return fmt.Sprintf("文字コード:%s / 列:%s / ワーカー:%d / 正規表:%d件\nキー出力:%s\n整形出力:%s",
		cfg.Encoding, column, cfg.Workers, table.Len(), cfg.KeyOutputPath, cfg.CleanedOutputPath)
}

func resultValues(results []labelclean.ResultRecord, column string) []string {
	values := make([]string, len(results))
	for i, r := range results {
		switch column {
		case labelclean.KeyColumn:
			values[i] = r.Key
		default:
			if v, ok := r.Value(); ok {
				values[i] = v
			}
		}
	}
	return values
}
