package ai

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"brandpress/internal/models"
	"brandpress/internal/scrape"
)

// fakeProvider returns canned text and records the prompts it was given.
type fakeProvider struct {
	text   string
	err    error
	system string
	prompt string
}

func (f *fakeProvider) Generate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.system = systemPrompt
	f.prompt = userPrompt
	return f.text, f.err
}

func (f *fakeProvider) Name() string { return "fake" }

func testBrand() models.BrandConfig {
	return models.BrandConfig{NewsletterName: "Field Notes"}
}

func TestGenerateStructuredDraft(t *testing.T) {
	fp := &fakeProvider{text: `{"hook": "Gear fails at the worst time.", "overview": "This month we cover maintenance."}`}
	d := NewDrafter(fp, scrape.New())

	resp, err := d.Generate(context.Background(), Request{
		SectionType:  models.SectionOpening,
		PromptType:   PromptFromText,
		InputContent: "maintenance tips",
		Brand:        testBrand(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !resp.Structured {
		t.Fatal("Structured = false for valid JSON draft")
	}
	var content map[string]string
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	if content["hook"] != "Gear fails at the worst time." {
		t.Errorf("hook = %q", content["hook"])
	}

	if !strings.Contains(fp.system, "Field Notes") {
		t.Error("system prompt should carry the newsletter name")
	}
	if !strings.Contains(fp.prompt, "OPENING SECTION") {
		t.Error("prompt should be section specific")
	}
	if !strings.Contains(fp.prompt, "INPUT CONTENT:\nmaintenance tips") {
		t.Error("prompt should embed pasted input content")
	}
}

func TestGenerateStripsCodeFence(t *testing.T) {
	fp := &fakeProvider{text: "```json\n{\"hook\": \"h\", \"overview\": \"o\"}\n```"}
	d := NewDrafter(fp, scrape.New())

	resp, err := d.Generate(context.Background(), Request{
		SectionType: models.SectionOpening,
		PromptType:  PromptFromText,
		Brand:       testBrand(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !resp.Structured {
		t.Fatal("fenced JSON should still parse as structured")
	}
}

func TestGenerateUnstructuredFallback(t *testing.T) {
	fp := &fakeProvider{text: "Here are some *ideas* for the section."}
	d := NewDrafter(fp, scrape.New())

	resp, err := d.Generate(context.Background(), Request{
		SectionType: models.SectionDetails,
		PromptType:  PromptFromText,
		Brand:       testBrand(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if resp.Structured {
		t.Fatal("prose draft should not be structured")
	}
	var content map[string]string
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	if content["raw_text"] != fp.text {
		t.Errorf("raw_text = %q", content["raw_text"])
	}
	if !strings.Contains(resp.RawHTML, "<em>ideas</em>") {
		t.Errorf("RawHTML should render markdown, got %q", resp.RawHTML)
	}
}

func TestGenerateEmbedsProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing key", ErrNoAPIKey, "[ERROR: ANTHROPIC_API_KEY not set. Set it as an environment variable.]"},
		{"api error", &APIError{Status: 429, Body: "rate limited"}, "[API Error: 429 - rate limited]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrafter(&fakeProvider{err: tt.err}, scrape.New())
			resp, err := d.Generate(context.Background(), Request{
				SectionType: models.SectionWrapup,
				PromptType:  PromptFromText,
				Brand:       testBrand(),
			})
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if resp.Structured {
				t.Error("error draft should not be structured")
			}
			var content map[string]string
			if err := json.Unmarshal(resp.Content, &content); err != nil {
				t.Fatalf("unmarshal content: %v", err)
			}
			if content["raw_text"] != tt.want {
				t.Errorf("raw_text = %q, want %q", content["raw_text"], tt.want)
			}
		})
	}
}

func TestSectionPromptsAllTypes(t *testing.T) {
	for _, info := range models.SectionTypes {
		prompt := sectionPrompt(info.Type, nil, nil, "", "source text")
		if !strings.Contains(prompt, "JSON") {
			t.Errorf("prompt for %q should request JSON output", info.Type)
		}
	}

	product := sectionPrompt(models.SectionFeature, nil, nil, "keep it short", "")
	if !strings.Contains(product, "EDITOR'S GUIDANCE: keep it short") {
		t.Error("guidance should be embedded in the prompt")
	}
	if !strings.Contains(product, "PRODUCT SECTION") {
		t.Error("feature prompt should use the product schema")
	}
}
