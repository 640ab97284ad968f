package assistant

import (
	"context"
	"errors"
	"testing"

	"animebuddy/internal/services"
)

func TestExtractTitleFencedReplyMatchesBare(t *testing.T) {
	gw := newScriptedGateway()
	ex := NewExtractor(gw, nil, nil)

	gw.title = `{"hasTitle":true,"title":"Bleach","usage":"subject"}`
	bare, err := ex.ExtractTitleAndUsage(context.Background(), "Tell me about Bleach")
	if err != nil {
		t.Fatalf("bare extraction: %v", err)
	}
	gw.title = "```json\n{\"hasTitle\":true,\"title\":\"Bleach\",\"usage\":\"subject\"}\n```"
	fenced, err := ex.ExtractTitleAndUsage(context.Background(), "Tell me about Bleach")
	if err != nil {
		t.Fatalf("fenced extraction: %v", err)
	}
	if bare != fenced {
		t.Fatalf("expected identical extraction, got %+v vs %+v", bare, fenced)
	}
	want := TitleExtraction{HasTitle: true, Title: "Bleach", Usage: UsageSubject}
	if fenced != want {
		t.Fatalf("unexpected extraction %+v", fenced)
	}
}

func TestExtractTitleNormalization(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  TitleExtraction
	}{
		{
			name:  "has title but blank",
			reply: `{"hasTitle":true,"title":"  ","usage":"subject"}`,
			want:  TitleExtraction{Usage: UsageNone},
		},
		{
			name:  "missing usage with title",
			reply: `{"hasTitle":true,"title":"Naruto"}`,
			want:  TitleExtraction{HasTitle: true, Title: "Naruto", Usage: UsageSubject},
		},
		{
			name:  "reference usage",
			reply: `{"hasTitle":true,"title":"Naruto","usage":"reference"}`,
			want:  TitleExtraction{HasTitle: true, Title: "Naruto", Usage: UsageReference},
		},
		{
			name:  "quoted null title",
			reply: `{"hasTitle":true,"title":"null","usage":"subject"}`,
			want:  TitleExtraction{Usage: UsageNone},
		},
		{
			name:  "title without flag",
			reply: `{"hasTitle":false,"title":"Naruto","usage":"subject"}`,
			want:  TitleExtraction{Usage: UsageNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newScriptedGateway()
			gw.title = tt.reply
			got, err := NewExtractor(gw, nil, nil).ExtractTitleAndUsage(context.Background(), "q")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractTitleMalformed(t *testing.T) {
	gw := newScriptedGateway()
	gw.title = `The anime is Bleach.`
	_, err := NewExtractor(gw, nil, nil).ExtractTitleAndUsage(context.Background(), "q")
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractTitleGatewayErrorPassesThrough(t *testing.T) {
	gw := newScriptedGateway()
	gw.failStage["extract_title"] = services.Wrap(services.ErrNetwork, "llm", "ask", "", errors.New("dial tcp"))
	_, err := NewExtractor(gw, nil, nil).ExtractTitleAndUsage(context.Background(), "q")
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("transport failure must not be reported as malformed: %v", err)
	}
}

func TestExtractGenre(t *testing.T) {
	tests := map[string]string{
		`{"genre":"  Isekai "}`: "isekai",
		`{"genre":null}`:        "general",
		`{"genre":""}`:          "general",
		`{"genre":"NULL"}`:      "general",
		`{}`:                    "general",
	}
	for reply, want := range tests {
		gw := newScriptedGateway()
		gw.genre = reply
		got, err := NewExtractor(gw, nil, nil).ExtractGenre(context.Background(), "q")
		if err != nil {
			t.Fatalf("reply %s: unexpected error %v", reply, err)
		}
		if got != want {
			t.Fatalf("reply %s: got %q want %q", reply, got, want)
		}
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		reply  string
		want   int
		wantOK bool
	}{
		{reply: `{"year":2021}`, want: 2021, wantOK: true},
		{reply: `{"year":"1998"}`, want: 1998, wantOK: true},
		{reply: `{"year":null}`},
		{reply: `{}`},
		{reply: `{"year":"soon"}`},
		{reply: `{"year":1200}`},
		{reply: `{"year":3000}`},
	}
	for _, tt := range tests {
		gw := newScriptedGateway()
		gw.year = tt.reply
		got, ok, err := NewExtractor(gw, nil, nil).ExtractYear(context.Background(), "q")
		if err != nil {
			t.Fatalf("reply %s: unexpected error %v", tt.reply, err)
		}
		if ok != tt.wantOK || got != tt.want {
			t.Fatalf("reply %s: got (%d, %v), want (%d, %v)", tt.reply, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestExtractYearRejectsFraction(t *testing.T) {
	gw := newScriptedGateway()
	gw.year = `{"year":2021.5}`
	_, _, err := NewExtractor(gw, nil, nil).ExtractYear(context.Background(), "q")
	if !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestExtractMultipleTitles(t *testing.T) {
	gw := newScriptedGateway()
	gw.titles = `{"titles":["Bleach", " ", null, "null", "Naruto", "bleach"]}`
	titles, err := NewExtractor(gw, nil, nil).ExtractMultipleTitles(context.Background(), "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(titles) != 2 || titles[0] != "Bleach" || titles[1] != "Naruto" {
		t.Fatalf("unexpected titles %v", titles)
	}

	gw.titles = `{"names":["Bleach"]}`
	if _, err := NewExtractor(gw, nil, nil).ExtractMultipleTitles(context.Background(), "q"); !errors.Is(err, services.ErrMalformedResponse) {
		t.Fatalf("expected missing key to be malformed, got %v", err)
	}
}
