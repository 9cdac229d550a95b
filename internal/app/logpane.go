package app

import "strings"

// paneWriter forwards handler output to the UI log pane line by line.
type paneWriter struct {
	u *uiState
}

func (p *paneWriter) Write(b []byte) (int, error) {
	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.u.appendLog(line)
	}
	return len(b), nil
}
