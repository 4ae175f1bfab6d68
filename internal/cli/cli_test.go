package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/catalog"
	"github.com/mcoot/leelawheel/internal/testutil"
)

func TestReadEvents(t *testing.T) {
	stream := "event: connected\ndata: {}\n\n" +
		": keepalive\n\n" +
		"event: tick\ndata: {\"state\":\"locked\",\"remaining_seconds\":2}\n\n" +
		"event: open\ndata: {\"state\":\"open\"}\n\n" +
		"event: tick\ndata: {}\n\n"

	var names []string
	err := readEvents(strings.NewReader(stream), func(event, data string) bool {
		names = append(names, event)
		return event != "open"
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"connected", "tick", "open"}, names)
}

func TestReadEventsJoinsDataLines(t *testing.T) {
	var got string
	err := readEvents(strings.NewReader("event: x\ndata: a\ndata: b\n\n"), func(event, data string) bool {
		got = data
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestPrintEventJSON(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, "tick", `{"state":"locked"}`, true)

	var evt SSEEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &evt))
	assert.Equal(t, "tick", evt.Event)
	assert.Equal(t, `{"state":"locked"}`, evt.Data)
}

func TestPrintEventText(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, "tick", `{"state":"locked","remaining_seconds":65,"remaining":"01:05"}`, false)
	assert.Contains(t, buf.String(), "Locked for 01:05")

	buf.Reset()
	printEvent(&buf, "open", `{"state":"open"}`, false)
	assert.Contains(t, buf.String(), "Open")
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "json", w: &buf}
	out.Print(response.ConfigResponse{CooldownMinutes: 5, DailyLock: true})

	var got response.ConfigResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.CooldownMinutes)
	assert.True(t, got.DailyLock)
}

func TestOutputCard(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "text", w: &buf}
	out.Print(response.DrawResponse{
		Player: response.Player{FirstName: "Alice", LastName: "Smith"},
		Result: response.Result{
			Quote:      response.Quote{Index: 7, Text: "quote 7", DateEN: "8 January 2001"},
			ImagePath:  "images/b.jpg",
			PlayedAtEN: "1 January 2024, 12:00:00",
		},
		Lock:         response.Lock{State: string(model.LockLocked), Remaining: "11:30:00"},
		CardFilename: "LeelaCard-Alice-Smith-0007-20240101-120000.png",
	})

	text := buf.String()
	assert.Contains(t, text, "Alice Smith")
	assert.Contains(t, text, "quote 7")
	assert.Contains(t, text, "Locked for 11:30:00")
	assert.Contains(t, text, "LeelaCard-Alice-Smith-0007-20240101-120000.png")
}

func TestPlayerQuery(t *testing.T) {
	assert.Equal(t, "first_name=Ann+Marie&last_name=O%27Neil", playerQuery("Ann Marie", "O'Neil"))
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "quotes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Quote;Date\nfirst;01/02/2001\nsecond;2002\n"), 0o644))

	imgDir := filepath.Join(dir, "img")
	require.NoError(t, os.Mkdir(imgDir, 0o755))
	for _, name := range []string{"10.jpg", "2.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(imgDir, name), nil, 0o644))
	}

	root := NewRootCmd()
	root.SetArgs([]string{"--token-file", filepath.Join(dir, "token"), "catalog", "import-csv", csvPath, filepath.Join(dir, catalog.QuotesFile)})
	require.NoError(t, root.Execute())

	root = NewRootCmd()
	root.SetArgs([]string{"--token-file", filepath.Join(dir, "token"), "catalog", "scan-images", imgDir, filepath.Join(dir, catalog.ManifestFile)})
	require.NoError(t, root.Execute())

	svc := catalog.New(testutil.NopLogger())
	require.NoError(t, svc.LoadDir(dir))
	assert.Equal(t, []model.Quote{
		{Quote: "first", Date: "01/02/2001"},
		{Quote: "second", Date: "2002"},
	}, svc.Quotes())
	assert.Equal(t, []string{"2.jpg", "10.jpg"}, svc.Images())
}

func TestAdminHashTokenSaves(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")

	root := NewRootCmd()
	root.SetArgs([]string{"--token-file", tokenFile, "--output", "json", "admin", "hash-token", "s3cret", "--save"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(data))
}

func TestClientSendsTokenAndParsesErrors(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusLocked)
		_, _ = w.Write([]byte(`{"error":{"code":"LOCKED","message":"Already drawn","remaining_seconds":41400}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok")
	err := c.Post(context.Background(), "/api/v1/draws", map[string]string{"first_name": "a"}, nil)

	require.Error(t, err)
	assert.Equal(t, "Already drawn (LOCKED, 41400s remaining)", err.Error())
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, userAgent, gotAgent)
}

func TestClientStreamRejectsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_PLAYER","message":"first and last name are required"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Stream(context.Background(), "/api/v1/players/countdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PLAYER")
}

func TestConfigValidate(t *testing.T) {
	c := &Config{ServerURL: "http://localhost:8080", Output: OutputText}
	assert.NoError(t, c.Validate())

	c.Output = "yaml"
	assert.Error(t, c.Validate())

	c.Output = OutputJSON
	c.ServerURL = ""
	assert.Error(t, c.Validate())
}
