package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/backmassage/partsinstall/internal/config"
	"github.com/backmassage/partsinstall/internal/term"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical part 700 MiB", 734003200, "700.0 MiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"sub-second", 1234567 * time.Microsecond, "1.235s"},
		{"minutes", 90*time.Second + 400*time.Millisecond, "1m30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.d)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(2048, time.Second); got != "2.0 KiB/s" {
		t.Errorf("FormatRate = %q", got)
	}
	if got := FormatRate(2048, 0); got != "n/a" {
		t.Errorf("FormatRate zero duration = %q", got)
	}
}

func TestPrintBanner_NoColor(t *testing.T) {
	term.Configure(config.ColorNever)
	var buf bytes.Buffer
	PrintBanner(&buf)
	if bytes.Contains(buf.Bytes(), []byte("\033[")) {
		t.Errorf("banner contains escape codes with colors disabled")
	}
	if buf.Len() == 0 {
		t.Error("banner is empty")
	}
}
