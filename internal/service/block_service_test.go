package service

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-room-reservation/internal/availability"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

func TestMapTxErrConcurrencyFailures(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"deadlock", &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}, ErrTxConflict},
		{"lock wait timeout", &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, ErrTxConflict},
		{"tx already done", sql.ErrTxDone, ErrTxConflict},
		{"wrapped deadlock", fmt.Errorf("commit block: %w", &mysql.MySQLError{Number: 1213}), ErrTxConflict},
		{"nil", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapTxErr(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("mapTxErr(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMapTxErrPassesThroughOtherErrors(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if got := mapTxErr(dup); got != error(dup) {
		t.Fatalf("mapTxErr(%v) = %v, want the original error", dup, got)
	}
	plain := errors.New("boom")
	if got := mapTxErr(plain); got != plain {
		t.Fatalf("mapTxErr(%v) = %v, want the original error", plain, got)
	}
}

func TestAvailabilityQuotaCheck(t *testing.T) {
	cases := []struct {
		name  string
		quota map[model.RoomCategory]int
		want  error
	}{
		{"valid", map[model.RoomCategory]int{model.CategoryStandard: 2}, nil},
		{"zero counts only", map[model.RoomCategory]int{model.CategoryStandard: 0, model.CategorySuite: 0}, availability.ErrEmptyQuota},
		{"empty map", map[model.RoomCategory]int{}, availability.ErrEmptyQuota},
		{"nil map", nil, availability.ErrEmptyQuota},
		{"negative count", map[model.RoomCategory]int{model.CategoryPremium: -1}, availability.ErrNegativeQuota},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := availabilityQuotaCheck(tc.quota); !errors.Is(got, tc.want) {
				t.Fatalf("availabilityQuotaCheck(%v) = %v, want %v", tc.quota, got, tc.want)
			}
		})
	}
}
