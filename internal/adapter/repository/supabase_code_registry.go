package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
)

// SupabaseCodeRegistry resolves referral codes through the Supabase REST API.
// Codes are stored normalized, so an exact match on the uppercased code is enough.
type SupabaseCodeRegistry struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewSupabaseCodeRegistry creates a Supabase-backed code registry
func NewSupabaseCodeRegistry(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) domainRepo.CodeRegistry {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseCodeRegistry{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

type supabaseCodeRow struct {
	Code             string `json:"code"`
	OwnerPrincipalID string `json:"owner_principal_id"`
	ProgramKey       string `json:"program_key"`
}

// Resolve queries referral_codes for an approved row with the normalized code
func (r *SupabaseCodeRegistry) Resolve(ctx context.Context, code string) (*entity.ResolvedCode, error) {
	normalized := entity.NormalizeCode(code)
	if normalized == "" {
		return nil, domainErrors.ErrCodeNotFound
	}

	params := url.Values{}
	params.Add("code", "eq."+normalized)
	params.Add("status", "eq."+string(model.ApprovalStatusApproved))
	params.Add("select", "code,owner_principal_id,program_key")
	params.Add("limit", "1")
	queryURL := fmt.Sprintf("%s/rest/v1/referral_codes?%s", r.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, domainErrors.NewStorageError("resolve code", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("SupabaseCodeRegistry: request failed",
			zap.String("code", normalized),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return nil, domainErrors.NewStorageError("resolve code", fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Error("SupabaseCodeRegistry: non-200 response",
			zap.String("code", normalized),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_body", body))
		return nil, domainErrors.NewStorageError("resolve code", fmt.Errorf("supabase API error: status %d", resp.StatusCode))
	}

	var rows []supabaseCodeRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, domainErrors.NewStorageError("resolve code", fmt.Errorf("failed to decode response: %w", err))
	}
	if len(rows) == 0 {
		return nil, domainErrors.ErrCodeNotFound
	}

	r.logger.Debug("SupabaseCodeRegistry: code resolved",
		zap.String("code", normalized),
		zap.Duration("duration", time.Since(start)))

	return &entity.ResolvedCode{
		Code:             entity.NormalizeCode(rows[0].Code),
		OwnerPrincipalID: rows[0].OwnerPrincipalID,
		ProgramKey:       rows[0].ProgramKey,
	}, nil
}
