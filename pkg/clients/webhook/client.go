package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vebops/store/internal/domain/models"
)

// Notifier posts daily report summaries to a configured HTTP endpoint.
type Notifier struct {
	httpClient *resty.Client
	url        string
}

// NewNotifier builds a webhook client for the given endpoint URL.
func NewNotifier(url string) *Notifier {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &Notifier{
		httpClient: restyClient,
		url:        url,
	}
}

// reportPayload is the condensed body sent to the webhook.
type reportPayload struct {
	Date         string `json:"date"`
	ProjectCount int    `json:"project_count"`
	RowCount     int    `json:"row_count"`
	SkippedLines int    `json:"skipped_lines"`
}

// errorBody captures whatever error shape the receiver returns.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendReport delivers the daily balance summary.
func (n *Notifier) SendReport(ctx context.Context, report models.DailyBalanceReport) error {
	payload := reportPayload{
		Date:         report.Date.Format("2006-01-02"),
		ProjectCount: report.ProjectCount,
		RowCount:     report.RowCount,
		SkippedLines: report.SkippedLines,
	}

	apiErr := new(errorBody)
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetError(apiErr).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("send report webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = apiErr.Message
		}
		return fmt.Errorf("report webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
