package models

import (
	"encoding/json"
	"testing"
)

func TestAnalyzeModeNormalize(t *testing.T) {
	cases := map[AnalyzeMode]AnalyzeMode{
		"":          ModeSentence,
		"sentence":  ModeSentence,
		"paragraph": ModeParagraph,
		"Paragraph": ModeSentence,
		"word":      ModeSentence,
	}
	for in, want := range cases {
		if got := in.Normalize(); got != want {
			t.Errorf("AnalyzeMode(%q).Normalize() = %q, 期望 %q", in, got, want)
		}
	}
}

func TestSegmentsDecodeFromModelOutput(t *testing.T) {
	var segments []Segment
	raw := `[{"en":"Hi","zh":"嗨"},{"en":"Bye.","zh":"再見。"}]`
	if err := json.Unmarshal([]byte(raw), &segments); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if len(segments) != 2 || segments[1].Zh != "再見。" {
		t.Fatalf("解析结果错误: %+v", segments)
	}
}
