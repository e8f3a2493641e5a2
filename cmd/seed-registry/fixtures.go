package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"
)

// codeAlphabet leaves out characters that are easy to misread on a flyer
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const generatedCodeLength = 8

type fixtureFile struct {
	Codes []codeEntry `yaml:"codes"`
}

type codeEntry struct {
	Code             string `yaml:"code"`
	OwnerPrincipalID string `yaml:"owner_principal_id"`
	ProgramKey       string `yaml:"program_key"`
	Status           string `yaml:"status"`
	OwnerEmail       string `yaml:"owner_email"`
	OwnerName        string `yaml:"owner_name"`
}

// fixture is one referral code plus the partner profile that owns it
type fixture struct {
	Code    *model.ReferralCode
	Profile *model.Profile
}

func loadFixtures(path string, minCodeLength int, now time.Time) ([]fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal fixture yaml: %w", err)
	}

	seen := make(map[string]int, len(file.Codes))
	fixtures := make([]fixture, 0, len(file.Codes))
	for i, entry := range file.Codes {
		owner := strings.TrimSpace(entry.OwnerPrincipalID)
		if owner == "" {
			return nil, fmt.Errorf("codes[%d]: owner_principal_id is required", i)
		}
		program := strings.TrimSpace(entry.ProgramKey)
		if program == "" {
			return nil, fmt.Errorf("codes[%d]: program_key is required", i)
		}

		code := entity.NormalizeCode(entry.Code)
		if code == "" {
			code, err = gonanoid.Generate(codeAlphabet, generatedCodeLength)
			if err != nil {
				return nil, fmt.Errorf("codes[%d]: generate code: %w", i, err)
			}
		}
		if !entity.IsWellFormedCode(code, minCodeLength) {
			return nil, fmt.Errorf("codes[%d]: code %q is malformed", i, code)
		}
		if prev, dup := seen[code]; dup {
			return nil, fmt.Errorf("codes[%d]: code %s already used by codes[%d]", i, code, prev)
		}
		seen[code] = i

		status := model.ApprovalStatus(strings.ToLower(strings.TrimSpace(entry.Status)))
		switch status {
		case "":
			status = model.ApprovalStatusApproved
		case model.ApprovalStatusApproved, model.ApprovalStatusPending, model.ApprovalStatusRejected:
		default:
			return nil, fmt.Errorf("codes[%d]: unknown status %q", i, entry.Status)
		}

		rc := &model.ReferralCode{
			Code:             code,
			OwnerPrincipalID: owner,
			ProgramKey:       program,
			Status:           status,
		}
		if status == model.ApprovalStatusApproved {
			approvedAt := now
			rc.ApprovedAt = &approvedAt
		}

		fixtures = append(fixtures, fixture{
			Code: rc,
			Profile: &model.Profile{
				PrincipalID: owner,
				FullName:    strings.TrimSpace(entry.OwnerName),
				Email:       strings.TrimSpace(entry.OwnerEmail),
			},
		})
	}

	return fixtures, nil
}
