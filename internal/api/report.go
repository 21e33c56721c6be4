package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ReportTimeout is the hard abort for report generation. The endpoint
// runs a long job server-side; past this the request is cancelled and
// the action is terminal.
const ReportTimeout = 60 * time.Second

type reportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	HTML    string `json:"html"`
}

// GenerateReport calls the externally supplied report endpoint with the
// xhr marker and header it expects, waits up to ReportTimeout, and
// writes the returned HTML to a file. It returns the file path.
func (c *Client) GenerateReport(ctx context.Context, reportURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ReportTimeout)
	defer cancel()

	sep := "?"
	if strings.Contains(reportURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportURL+sep+"xhr=1", nil)
	if err != nil {
		return "", fmt.Errorf("create report request: %w", err)
	}
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.reportClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("report generation timed out after %s", ReportTimeout)
		}
		return "", fmt.Errorf("report request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read report response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.apiError(resp.StatusCode, raw)
	}

	var rep reportResponse
	if err := json.Unmarshal(raw, &rep); err != nil {
		return "", c.malformed(resp.StatusCode, raw, err)
	}
	if !rep.Success {
		msg := rep.Message
		if msg == "" {
			msg = "no se pudo generar el informe"
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}
	if rep.HTML == "" {
		return "", errors.New("report response carried no HTML")
	}

	f, err := os.CreateTemp(c.dumpDir, "migrapanel-informe-*.html")
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(rep.HTML)); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return f.Name(), nil
}
