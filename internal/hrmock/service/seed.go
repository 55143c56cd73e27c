package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
	"github.com/aussiebroadwan/idbadge/pkg/idx"
)

// seedFieldCount is userId|password|fullName|department|email|phone.
const seedFieldCount = 6

// Seed loads employees from a seed string of semicolon-separated records,
// each record being pipe-separated fields:
//
//	E1001|pw|Nguyen Van A|QA|a@co.vn|0901234567;E1002|...
//
// Records whose userId already exists are skipped so seeding is safe to
// run on every start.
func Seed(ctx context.Context, st store.Store, logger *slog.Logger, entries string) error {
	employees := st.Employees()

	entries = strings.TrimSpace(entries)
	if entries == "" {
		empty, err := employees.IsEmpty(ctx)
		if err != nil {
			return fmt.Errorf("check employee directory: %w", err)
		}
		if empty {
			logger.Warn("employee directory is empty and no seed records were provided; every login will fail")
		}
		return nil
	}

	seeded := 0

	for _, record := range strings.Split(entries, ";") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.Split(record, "|")
		if len(fields) != seedFieldCount {
			return fmt.Errorf("seed record %q: want %d fields, got %d", record, seedFieldCount, len(fields))
		}

		hash, err := cryptox.HashPassword(fields[1])
		if err != nil {
			return fmt.Errorf("hash seed password for %q: %w", fields[0], err)
		}

		emp := domain.Employee{
			ID:           idx.New().String(),
			UserID:       strings.TrimSpace(fields[0]),
			FullName:     strings.TrimSpace(fields[2]),
			Department:   strings.TrimSpace(fields[3]),
			Email:        strings.TrimSpace(fields[4]),
			PhoneNumber:  strings.TrimSpace(fields[5]),
			PasswordHash: hash,
		}
		if emp.UserID == "" {
			return fmt.Errorf("seed record %q: empty userId", record)
		}

		err = employees.Create(ctx, emp)
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed employee %q: %w", emp.UserID, err)
		}
		seeded++
	}

	if seeded > 0 {
		logger.Info("seeded employee directory", "count", seeded)
	}
	return nil
}
