package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/labelclean/internal/logging"
	"yashubustudio/labelclean/labelclean"
)

const (
	logDebounceInterval = 150 * time.Millisecond
	maxLogLines         = 200
)

type uiState struct {
	service    *labelclean.Service
	cfg        labelclean.Config
	configPath string
	baseLogger *slog.Logger
	logger     *slog.Logger

	w             fyne.Window
	input         *widget.Entry
	log           *widget.Entry
	status        *widget.Label
	progress      *widget.ProgressBar
	summary       *widget.Label
	configSummary *widget.Label
	resTbl        *widget.Table
	columns       []tableColumn
	records       []labelclean.RawRecord
	rows          []labelclean.ResultRecord
	loaded        []labelclean.RawRecord
	loadedText    string
	statusBind    binding.String
	logBind       binding.String
	progressBind  binding.Float
	logLines      []string
	logMu         sync.Mutex
	logUpdateCh   chan struct{}

	cleanBtn     *widget.Button
	saveBtn      *widget.Button
	exportKeyBtn *widget.Button
	exportValBtn *widget.Button
	loadBtn      *widget.Button
}

func buildUI(a fyne.App, cfg labelclean.Config, configPath string, base *slog.Logger) *uiState {
	u := &uiState{cfg: cfg, configPath: configPath, baseLogger: base}
	u.w = a.NewWindow("Label Cleaner - Fingerprint & Canonical Lookup")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("準備完了")
	u.progressBind = binding.NewFloat()
	u.logBind = binding.NewString()
	u.startLogUpdater()
	u.rebuildService()

	u.input = widget.NewMultiLineEntry()
	u.input.SetPlaceHolder("ここにラベルを入力（1行=1件）")

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("処理ログ")
	u.log.Disable()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.progress = widget.NewProgressBarWithData(u.progressBind)
	u.progress.Hide()
	u.summary = widget.NewLabel("")
	u.configSummary = widget.NewLabel("")

	u.cleanBtn = widget.NewButtonWithIcon("クリーニング実行", theme.ConfirmIcon(), func() { u.onClean() })
	u.saveBtn = widget.NewButtonWithIcon("既定の出力先に保存", theme.DocumentSaveIcon(), func() { u.onSaveDefaults() })
	u.exportKeyBtn = widget.NewButtonWithIcon("キーCSV出力", theme.DownloadIcon(), func() { u.onExport(labelclean.KeyColumn, "test.csv") })
	u.exportValBtn = widget.NewButtonWithIcon("整形結果出力", theme.DownloadIcon(), func() { u.onExport(labelclean.CleanedColumn, "output.txt") })
	u.loadBtn = widget.NewButtonWithIcon("ファイル読込", theme.FolderOpenIcon(), func() { u.onLoadFile() })
	settingsBtn := widget.NewButtonWithIcon("設定", theme.SettingsIcon(), func() { u.openSettings() })

	u.columns = resultColumns()
	u.resTbl = widget.NewTable(
		func() (int, int) {
			return len(u.rows) + 1, len(u.columns)
		},
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return lbl
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			if id.Col >= len(u.columns) {
				lbl.SetText("")
				return
			}
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.Alignment = fyne.TextAlignCenter
				lbl.SetText(u.columns[id.Col].Title)
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			lbl.Alignment = fyne.TextAlignLeading
			rowIdx := id.Row - 1
			if rowIdx >= len(u.rows) || rowIdx >= len(u.records) {
				lbl.SetText("")
				return
			}
			lbl.SetText(u.columns[id.Col].Render(u.records[rowIdx], u.rows[rowIdx]))
		},
	)
	for i, col := range u.columns {
		u.resTbl.SetColumnWidth(i, col.Width)
	}
	u.resTbl.OnSelected = func(id widget.TableCellID) {
		u.showRowDetail(id.Row - 1)
	}

	controlRow1 := container.NewGridWithColumns(3, u.cleanBtn, u.loadBtn, settingsBtn)
	controlRow2 := container.NewGridWithColumns(3, u.saveBtn, u.exportKeyBtn, u.exportValBtn)
	left := container.NewVBox(
		widget.NewLabelWithStyle("入力ラベル", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewStack(u.input),
		controlRow1,
		controlRow2,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("進捗", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.progress,
		u.status,
		u.summary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("設定サマリ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.configSummary,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("ログ", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewStack(u.log),
	)

	split := container.NewHSplit(left, container.NewBorder(nil, nil, nil, nil, u.resTbl))
	split.Offset = 0.35

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1180, 760))
	u.updateConfigSummary()
	return u
}

// rebuildService recreates the service and the pane logger after a settings
// change.
func (u *uiState) rebuildService() {
	u.logger = paneLogger(u.baseLogger, u, logging.ParseLevel(u.cfg.Log.Level))
	u.service = labelclean.NewService(nil, u.cfg, u.logger)
}

func (u *uiState) setBusy(b bool) {
	fyne.Do(func() {
		for _, btn := range []*widget.Button{u.cleanBtn, u.saveBtn, u.exportKeyBtn, u.exportValBtn, u.loadBtn} {
			if b {
				btn.Disable()
			} else {
				btn.Enable()
			}
		}
	})
}

func (u *uiState) appendLog(msg string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)

	u.logMu.Lock()
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > maxLogLines {
		u.logLines = u.logLines[len(u.logLines)-maxLogLines:]
	}
	u.logMu.Unlock()

	if u.logUpdateCh == nil {
		u.flushLog()
		return
	}
	select {
	case u.logUpdateCh <- struct{}{}:
	default:
	}
}

func (u *uiState) startLogUpdater() {
	if u.logUpdateCh != nil {
		return
	}
	u.logUpdateCh = make(chan struct{}, 1)
	go u.logUpdateLoop()
}

func (u *uiState) logUpdateLoop() {
	timer := time.NewTimer(logDebounceInterval)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-u.logUpdateCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(logDebounceInterval)
		case <-timer.C:
			u.flushLog()
		}
	}
}

func (u *uiState) flushLog() {
	u.logMu.Lock()
	text := strings.Join(u.logLines, "\n")
	u.logMu.Unlock()
	_ = u.logBind.Set(text)
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) configureProgress(max float64) {
	fyne.Do(func() {
		u.progress.Min = 0
		u.progress.Max = max
	})
}

func (u *uiState) setProgressValue(value float64) {
	_ = u.progressBind.Set(value)
}

func (u *uiState) showProgress() {
	fyne.Do(func() {
		u.progress.Show()
	})
}

func (u *uiState) hideProgress() {
	fyne.Do(func() {
		u.progress.Hide()
	})
}

func (u *uiState) updateConfigSummary() {
	u.configSummary.SetText(configSummaryText(u.cfg, u.service.Table()))
}

func (u *uiState) onClean() {
	records := recordsForInput(u.input.Text, u.loaded, u.loadedText)
	if len(records) == 0 {
		dialog.ShowInformation("情報", "入力ラベルが空です", u.w)
		return
	}
	total := len(records)
	u.configureProgress(float64(total))
	u.setProgressValue(0)
	u.showProgress()
	u.setStatus("処理中...")
	u.setBusy(true)
	start := time.Now()
	svc := u.service

	go func() {
		results, err := svc.CleanAll(context.Background(), records, func(done, total int) {
			u.setProgressValue(float64(done))
			u.setStatus(fmt.Sprintf("処理中 %d/%d", done, total))
		})

		u.setBusy(false)
		u.hideProgress()
		if err != nil {
			fyne.Do(func() {
				dialog.ShowError(err, u.w)
			})
			u.setStatus("エラー")
			u.logger.Error("cleaning failed", "error", err)
			return
		}
		summary := labelclean.Summarize(results)
		fyne.Do(func() {
			u.records = records
			u.rows = results
			u.summary.SetText(summaryText(summary))
			u.resTbl.Refresh()
		})
		u.setProgressValue(float64(len(results)))
		u.setStatus(fmt.Sprintf("完了 %d件 (%.1fs)", len(results), time.Since(start).Seconds()))
	}()
}

func (u *uiState) showRowDetail(idx int) {
	if idx < 0 || idx >= len(u.rows) || idx >= len(u.records) {
		return
	}
	rec, res := u.records[idx], u.rows[idx]
	value := res.Cleaned
	if !res.Resolved {
		value = "(正規表に未登録)"
	}
	msg := fmt.Sprintf("入力:\n%s\n\nキー:\n%s\n\n整形結果:\n%s", rec.Text, res.Key, value)
	dialog.ShowInformation(fmt.Sprintf("行 %d", rec.Index+1), msg, u.w)
}

func (u *uiState) onSaveDefaults() {
	if len(u.rows) == 0 {
		dialog.ShowInformation("情報", "出力データがありません", u.w)
		return
	}
	if err := labelclean.WriteOutputs(u.cfg.KeyOutputPath, u.cfg.CleanedOutputPath, u.rows); err != nil {
		dialog.ShowError(err, u.w)
		u.logger.Error("write outputs failed", "error", err)
		return
	}
	u.logger.Info("outputs written", "key", u.cfg.KeyOutputPath, "cleaned", u.cfg.CleanedOutputPath, "rows", len(u.rows))
}

func (u *uiState) onExport(column, defaultName string) {
	if len(u.rows) == 0 {
		dialog.ShowInformation("情報", "出力データがありません", u.w)
		return
	}
	values := resultValues(u.rows, column)
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if err := labelclean.WriteColumn(uc, column, values); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.logger.Info("column exported", "column", column, "path", uc.URI().Path(), "rows", len(values))
	}, u.w)
	fd.SetFileName(defaultName)
	fd.Show()
}

func (u *uiState) openSettings() {
	cfg := u.cfg
	encodingEntry := widget.NewEntry()
	encodingEntry.SetText(cfg.Encoding)
	columnEntry := widget.NewEntry()
	columnEntry.SetPlaceHolder("自動 (raw_text, text, label ...)")
	columnEntry.SetText(cfg.TextColumn)
	workersSel := widget.NewSelect([]string{"1", "2", "4", "8", "16"}, nil)
	workersSel.SetSelected(strconv.Itoa(cfg.Workers))
	keyEntry := widget.NewEntry()
	keyEntry.SetText(cfg.KeyOutputPath)
	cleanedEntry := widget.NewEntry()
	cleanedEntry.SetText(cfg.CleanedOutputPath)
	levelSel := widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)
	levelSel.SetSelected(cfg.Log.Level)

	form := &widget.Form{Items: []*widget.FormItem{
		{Text: "文字コード", Widget: encodingEntry},
		{Text: "テキスト列", Widget: columnEntry},
		{Text: "ワーカー数", Widget: workersSel},
		{Text: "キー出力先", Widget: keyEntry},
		{Text: "整形出力先", Widget: cleanedEntry},
		{Text: "ログレベル", Widget: levelSel},
	}}

	dialog.NewCustomConfirm("設定", "OK", "キャンセル", form, func(ok bool) {
		if !ok {
			return
		}
		newCfg := cfg
		newCfg.Encoding = strings.TrimSpace(encodingEntry.Text)
		newCfg.TextColumn = strings.TrimSpace(columnEntry.Text)
		if v, err := strconv.Atoi(workersSel.Selected); err == nil {
			newCfg.Workers = v
		}
		newCfg.KeyOutputPath = strings.TrimSpace(keyEntry.Text)
		newCfg.CleanedOutputPath = strings.TrimSpace(cleanedEntry.Text)
		if levelSel.Selected != "" {
			newCfg.Log.Level = levelSel.Selected
		}
		newCfg.ApplyDefaults()

		if _, err := labelclean.DecodeBytes(nil, newCfg.Encoding); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.cfg = newCfg
		u.rebuildService()
		u.updateConfigSummary()
		if err := labelclean.SaveConfig(u.configPath, newCfg); err != nil {
			u.logger.Warn("config save failed", "path", u.configPath, "error", err)
			return
		}
		u.logger.Info("settings updated", "path", u.configPath)
	}, u.w).Show()
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		data, err := labelclean.DecodeBytes(raw, u.cfg.Encoding)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		uri := rc.URI()
		opts := labelclean.InputParseOptions{TextColumn: u.cfg.TextColumn, Encoding: u.cfg.Encoding}
		delim, delimited := labelclean.InputDelimiter(uri.Path(), data, opts)
		if !delimited {
			records, err := labelclean.ReadPlainTextRecords(bytes.NewReader(data))
			if err != nil {
				dialog.ShowError(err, u.w)
				return
			}
			u.applyLoadedRecords(uri, records)
			return
		}
		rows, err := labelclean.ReadDelimitedRows(bytes.NewReader(data), delim)
		if err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.handleCSVRows(uri, rows)
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".csv", ".tsv"}))
	fd.Show()
}

func (u *uiState) applyLoadedRecords(uri fyne.URI, records []labelclean.RawRecord) {
	if len(records) == 0 {
		dialog.ShowError(labelclean.ErrEmptyInput, u.w)
		return
	}
	u.loaded = records
	u.loadedText = recordsText(records)
	u.input.SetText(u.loadedText)
	u.logger.Info("file loaded", "file", filepath.Base(uri.Path()), "rows", len(records))
}

func (u *uiState) handleCSVRows(uri fyne.URI, rows [][]string) {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols == 0 {
		dialog.ShowError(labelclean.ErrEmptyInput, u.w)
		return
	}
	defaultCol, hasHeader, err := labelclean.ResolveTextColumn(rows[0], u.cfg.TextColumn)
	if err != nil {
		u.logger.Warn("text column not found, choose one", "column", u.cfg.TextColumn, "error", err)
		defaultCol, hasHeader = 0, false
	}
	if maxCols == 1 {
		u.applyLoadedRecords(uri, labelclean.ColumnRecords(rows, defaultCol, hasHeader))
		return
	}
	choices := buildCSVColumnChoices(rows, hasHeader)
	defaultChoice := 0
	for i, c := range choices {
		if c.Index == defaultCol {
			defaultChoice = i
			break
		}
	}
	options := make([]string, len(choices))
	for i, c := range choices {
		options[i] = c.Label
	}
	selectedCol := choices[defaultChoice].Index
	selectWidget := widget.NewSelect(options, func(value string) {
		for i, opt := range options {
			if opt == value {
				selectedCol = choices[i].Index
				return
			}
		}
	})
	selectWidget.SetSelected(options[defaultChoice])
	content := container.NewVBox(widget.NewLabel("読み込む列を選択してください"), selectWidget)
	dialog.NewCustomConfirm("列の選択", "読み込む", "キャンセル", content, func(ok bool) {
		if !ok {
			return
		}
		u.applyLoadedRecords(uri, labelclean.ColumnRecords(rows, selectedCol, hasHeader))
	}, u.w).Show()
}
