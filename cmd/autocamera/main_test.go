package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ivlev/autocamera/internal/engine"
)

func TestPrintReports(t *testing.T) {
	reports := []*engine.Report{
		{Sequence: "flyby", Cameras: 2, KeysWritten: 24, SnapshotPath: "output/flyby.yaml", BakePath: "output/flyby_bake.yaml"},
		nil,
		{Sequence: "orbit", Cameras: 1, KeysWritten: 10, SnapshotPath: "output/orbit.yaml", Partial: errors.New("channel missing: PosZ")},
	}

	var buf bytes.Buffer
	if done := printReports(&buf, reports); done != 2 {
		t.Errorf("Expected 2 successful routes, got %d", done)
	}

	out := buf.String()
	for _, want := range []string{
		"[+] flyby: камер 2, ключей 24 -> output/flyby.yaml\n",
		"[+] Запекание: output/flyby_bake.yaml\n",
		"[!] orbit: записано без части каналов: channel missing: PosZ\n",
		"[+] orbit: камер 1, ключей 10 -> output/orbit.yaml\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Превью") {
		t.Errorf("No preview line expected without a preview path, got:\n%s", out)
	}
}
