package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/use-agent/tokensaver/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CLI flags
var (
	apiURL = flag.String("api-url", "http://localhost:8080", "TokenSaver API base URL")
	apiKey = flag.String("api-key", "", "API key for authenticated requests")
	runs   = flag.Int("runs", 3, "Number of runs per sample and intensity for averaging")
	scale  = flag.Int("scale", 20, "Repetitions of each sample body (controls payload size)")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

var printer = message.NewPrinter(language.English)

// Samples covering the kinds of text people paste into chat tools.
var samples = []struct {
	Label       string
	ContentType string
	Body        string
}{
	{"Build log", "text", "[info] compiling module......   ok\r\n[warn] retrying!!!!!   \r\n\r\n\r\n\r\n"},
	{"Code", "text", "func main() {\r\n    fmt.Println(\"hi\")   \r\n}\r\n\r\n\r\n\r\n"},
	{"Markdown doc", "text", "## Section\n==========\n\nSome   text   here.\n\n\n\n----------\n"},
	{"Chat paste", "text", "so so so basically \u200bthe  idea is.....   \n\n\n"},
	{"CJK", "text", "这是   一个测试。\n\n\n\n日本語\u3000\u3000テキスト\n"},
	{"HTML", "html", "<div><p>First   paragraph.</p>\n\n\n<p>Second <b>bold</b> line.</p></div>\n"},
}

var intensities = []string{"soft", "aggressive"}

// --- Benchmark result types ---

type runResult struct {
	Run           int    `json:"run"`
	ClientMs      int64  `json:"client_ms"`
	ServerTotalMs int64  `json:"server_total_ms"`
	ConvertMs     int64  `json:"convert_ms"`
	CleaningMs    int64  `json:"cleaning_ms"`
	OriginalChars int    `json:"original_chars"`
	SavedChars    int    `json:"saved_chars"`
	SavedPct      string `json:"saved_pct"`
	TokensSaved   int    `json:"tokens_saved"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type sampleAverages struct {
	ClientMs    float64 `json:"client_ms"`
	CleaningMs  float64 `json:"cleaning_ms"`
	SavedChars  float64 `json:"saved_chars"`
	TokensSaved float64 `json:"tokens_saved"`
}

type sampleResult struct {
	Label     string          `json:"label"`
	Intensity string          `json:"intensity"`
	Chars     int             `json:"chars"`
	SavedPct  string          `json:"saved_pct"`
	Runs      []runResult     `json:"runs"`
	Averages  *sampleAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp     string         `json:"timestamp"`
	APIURL        string         `json:"api_url"`
	RunsPerSample int            `json:"runs_per_sample"`
	Results       []sampleResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== TokenSaver Benchmark Suite ===")
	fmt.Printf("API URL:      %s\n", *apiURL)
	fmt.Printf("Runs/sample:  %d\n", *runs)
	fmt.Printf("Output:       %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure tokensaver is running (e.g. make run)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		APIURL:        *apiURL,
		RunsPerSample: *runs,
	}

	client := &http.Client{Timeout: 30 * time.Second}
	for _, s := range samples {
		text := strings.Repeat(s.Body, *scale)
		for _, in := range intensities {
			fmt.Printf("Benchmarking [%s/%s] %s chars ...\n", s.Label, in, printer.Sprintf("%d", len(text)))
			sr := sampleResult{Label: s.Label, Intensity: in, Chars: len(text)}

			for i := 1; i <= *runs; i++ {
				fmt.Printf("  Run %d/%d ... ", i, *runs)
				rr := benchmarkSample(client, text, in, s.ContentType, i)
				if rr.Success {
					fmt.Printf("OK  %dms  %s%% saved\n", rr.ClientMs, rr.SavedPct)
					sr.SavedPct = rr.SavedPct
				} else {
					fmt.Printf("FAILED: %s\n", rr.Error)
				}
				sr.Runs = append(sr.Runs, rr)
			}

			sr.Averages = computeAverages(sr.Runs)
			report.Results = append(report.Results, sr)
		}
		fmt.Println()
	}

	// Print summary table.
	printTable(report.Results)

	// Write JSON report.
	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %d", resp.StatusCode)
	}
	return nil
}

func benchmarkSample(client *http.Client, text, intensity, contentType string, run int) runResult {
	rr := runResult{Run: run}

	bodyBytes, err := json.Marshal(models.OptimizeRequest{
		Text:        &text,
		Intensity:   intensity,
		ContentType: contentType,
	})
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest(http.MethodPost, *apiURL+"/api/v1/optimize", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var or models.OptimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}
	rr.ClientMs = time.Since(start).Milliseconds()

	rr.Success = or.Success
	rr.ServerTotalMs = or.Timing.TotalMs
	rr.ConvertMs = or.Timing.ConvertMs
	rr.CleaningMs = or.Timing.CleaningMs
	if or.Stats != nil {
		rr.OriginalChars = or.Stats.OriginalChars
		rr.SavedChars = or.Stats.SavedChars
		rr.SavedPct = or.Stats.SavedPct
		rr.TokensSaved = or.Stats.EstimatedTokenSavings
	}
	if or.Error != nil {
		rr.Error = fmt.Sprintf("[%s] %s", or.Error.Code, or.Error.Message)
	}

	return rr
}

func computeAverages(runs []runResult) *sampleAverages {
	var successCount int
	var avg sampleAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.ClientMs += float64(r.ClientMs)
		avg.CleaningMs += float64(r.CleaningMs)
		avg.SavedChars += float64(r.SavedChars)
		avg.TokensSaved += float64(r.TokensSaved)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.ClientMs /= n
	avg.CleaningMs /= n
	avg.SavedChars /= n
	avg.TokensSaved /= n
	return &avg
}

func printTable(results []sampleResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Sample\tIntensity\tAvg Latency\tChars Saved\tTokens Saved\tSaved %%\n")
	fmt.Fprintf(w, "──────\t─────────\t───────────\t───────────\t────────────\t───────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\t%s\tFAILED\t-\t-\t-\n", r.Label, r.Intensity)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%dms\t%s\t%s\t%s%%\n",
			r.Label,
			r.Intensity,
			int64(r.Averages.ClientMs),
			printer.Sprintf("%d", int(r.Averages.SavedChars)),
			printer.Sprintf("%d", int(r.Averages.TokensSaved)),
			r.SavedPct,
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
