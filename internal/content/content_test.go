package content_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alkime/podcurate/internal/content"
	"github.com/alkime/podcurate/internal/wizard"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBrief(t *testing.T) content.Brief {
	t.Helper()

	s := wizard.NewState(wizard.Config{}, wizard.DefaultCatalog())
	_, err := s.ToggleLiked(s.Catalog.News[0].ID)
	require.NoError(t, err)
	_, err = s.ToggleLiked(s.Catalog.News[3].ID)
	require.NoError(t, err)
	require.NoError(t, s.SetPresenter(wizard.SlotFirst, "SHIRO", "輕鬆"))
	require.NoError(t, s.SetPresenter(wizard.SlotSecond, "小美", "專業"))

	return content.NewBrief(s.Summary(), time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC))
}

func TestBrief_Prompt(t *testing.T) {
	b := testBrief(t)
	prompt := b.Prompt()

	assert.Equal(t, "2025-06-02", b.Date)
	assert.Contains(t, prompt, "Target length: 10-20 minutes")
	assert.Contains(t, prompt, "Topics: 中國")
	assert.Contains(t, prompt, "- SHIRO (輕鬆)")
	assert.Contains(t, prompt, "- 小美 (專業)")
	assert.Contains(t, prompt, "1. 選龍法傳議案送出！政院盼立院受過回應各界訴求 (聯合報, 台灣)")
	assert.Contains(t, prompt, "2. 奧特曼")
	assert.Contains(t, prompt, "Delivery: 每週 一 8:00 PM")
	assert.Len(t, b.Cast(), 2)
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, content.SystemPrompt(wizard.DialogConversational), "conversation")
	assert.Contains(t, content.SystemPrompt(wizard.DialogSinglePresenter), "monologue")
}

func TestParseScript(t *testing.T) {
	md := `# 今日焦點

**SHIRO**: 大家好！

**小美**: 今天有兩則新聞。
第一則是關於立法院。

stray text before nothing else
**SHIRO**:   再見。
`

	s, err := content.ParseScript(md)
	require.NoError(t, err)

	assert.Equal(t, "今日焦點", s.Title)
	require.Len(t, s.Segments, 3)
	assert.Equal(t, content.Segment{Speaker: "小美", Text: "今天有兩則新聞。\n第一則是關於立法院。\nstray text before nothing else"}, s.Segments[1])
	assert.Equal(t, "再見。", s.Segments[2].Text)

	again, err := content.ParseScript(s.Markdown())
	require.NoError(t, err)
	assert.Equal(t, s, again)

	_, err = content.ParseScript("# only a title\n")
	require.ErrorIs(t, err, content.ErrEmptyScript)
}

func TestWriter_MissingAPIKey(t *testing.T) {
	_, err := content.NewWriter("", "").Write(context.Background(), testBrief(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestWriter_Write(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [{
				"type": "tool_use",
				"id": "toolu_01",
				"name": "save_podcast_script",
				"input": {
					"title": "早安新聞",
					"segments": [
						{"speaker": "SHIRO", "text": "早安"},
						{"speaker": "小美", "text": "今天的新聞"}
					]
				}
			}],
			"stop_reason": "tool_use",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 20}
		}`)
	}))
	defer srv.Close()

	w := content.NewWriter("test-key", "",
		anthropicopt.WithBaseURL(srv.URL),
		anthropicopt.WithMaxRetries(0),
	)

	script, err := w.Write(context.Background(), testBrief(t))
	require.NoError(t, err)

	assert.Equal(t, "早安新聞", script.Title)
	assert.Equal(t, []content.Segment{
		{Speaker: "SHIRO", Text: "早安"},
		{Speaker: "小美", Text: "今天的新聞"},
	}, script.Segments)

	assert.Equal(t, "claude-sonnet-4-5-20250929", got["model"])
	choice, ok := got["tool_choice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "save_podcast_script", choice["name"])
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, openai.AudioSpeechNewParamsVoiceAlloy, content.VoiceFor("SHIRO"))
	assert.Equal(t, openai.AudioSpeechNewParamsVoiceNova, content.VoiceFor("小美"))
	assert.Equal(t, openai.AudioSpeechNewParamsVoiceShimmer, content.VoiceFor("stranger"))
}

func TestNarrator_Narrate(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []map[string]any
	)

	pcm := make([]byte, 24000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/audio/speech"), r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		mu.Lock()
		requests = append(requests, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pcm)
	}))
	defer srv.Close()

	n := content.NewNarrator("test-key", "",
		openaiopt.WithBaseURL(srv.URL+"/v1/"),
		openaiopt.WithMaxRetries(0),
	)

	var progress []int
	n.OnSegment = func(done, total int) {
		assert.Equal(t, 2, total)
		progress = append(progress, done)
	}

	script := content.Script{
		Title: "早安新聞",
		Segments: []content.Segment{
			{Speaker: "SHIRO", Text: "早安"},
			{Speaker: "小美", Text: "今天的新聞"},
		},
	}
	cast := []wizard.Presenter{{Name: "SHIRO", Style: "輕鬆"}, {Name: "小美", Style: ""}}

	out := &bytes.Buffer{}
	require.NoError(t, n.Narrate(context.Background(), script, cast, out))

	assert.Equal(t, []int{1, 2}, progress)
	assert.Positive(t, out.Len())

	done, total := n.Progress().Cap()
	assert.Equal(t, 2, done)
	assert.Equal(t, 2, total)
	assert.NotEmpty(t, n.Levels().Read())

	require.Len(t, requests, 2)
	assert.Equal(t, "alloy", requests[0]["voice"])
	assert.Equal(t, "pcm", requests[0]["response_format"])
	assert.Equal(t, "gpt-4o-mini-tts", requests[0]["model"])
	assert.Contains(t, requests[0], "instructions")
	assert.Equal(t, "nova", requests[1]["voice"])
	assert.NotContains(t, requests[1], "instructions")
}

func TestNarrator_Errors(t *testing.T) {
	script := content.Script{Segments: []content.Segment{{Speaker: "SHIRO", Text: "hi"}}}

	err := content.NewNarrator("", "").Narrate(context.Background(), script, nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	err = content.NewNarrator("k", "").Narrate(context.Background(), content.Script{}, nil, io.Discard)
	require.ErrorIs(t, err, content.ErrEmptyScript)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	n := content.NewNarrator("k", "", openaiopt.WithBaseURL(srv.URL+"/v1/"), openaiopt.WithMaxRetries(0))
	err = n.Narrate(context.Background(), script, nil, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment 1 (SHIRO)")
}
