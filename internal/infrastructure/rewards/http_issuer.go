package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"payday.backend/pkg/logger"
)

// HTTPIssuer reports successfully processed batches to the external rewards
// service. Issuance is fire-and-forget: a failure here never rolls back or
// re-reports the payment batch outcome.
type HTTPIssuer struct {
	url        string
	httpClient *http.Client
}

func NewHTTPIssuer(url string) *HTTPIssuer {
	return &HTTPIssuer{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type issueBatchRequest struct {
	OwnerAddress string `json:"ownerAddress"`
	Succeeded    int    `json:"succeeded"`
}

// IssueBatch posts the batch result asynchronously. No-op when the rewards
// service is not configured.
func (i *HTTPIssuer) IssueBatch(ctx context.Context, owner string, succeeded int) {
	if i.url == "" || succeeded == 0 {
		return
	}

	go func() {
		body, err := json.Marshal(issueBatchRequest{OwnerAddress: owner, Succeeded: succeeded})
		if err != nil {
			return
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, i.url, bytes.NewReader(body))
		if err != nil {
			logger.Warn(ctx, "rewards request build failed", zap.Error(err))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := i.httpClient.Do(req)
		if err != nil {
			logger.Warn(ctx, "rewards issuance failed", zap.String("owner", owner), zap.Error(err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			logger.Warn(ctx, "rewards service rejected batch",
				zap.String("owner", owner),
				zap.Int("status", resp.StatusCode))
		}
	}()
}
