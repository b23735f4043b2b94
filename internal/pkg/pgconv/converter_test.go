//go:build unit

package pgconv_test

import (
	"database/sql"
	"testing"
	"time"

	"space-booking/internal/pkg/pgconv"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestUUIDPtrRoundTrip(t *testing.T) {
	id := uuid.New()

	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id))
	if diff := cmp.Diff(&id, got); diff != "" {
		t.Errorf("uuid round trip mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{Valid: false}))
}

func TestStringPtrRoundTrip(t *testing.T) {
	s := "reference-123"

	got := pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(&s))
	if diff := cmp.Diff(&s, got); diff != "" {
		t.Errorf("string round trip mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, pgconv.StringPtrFromPgtype(pgconv.StringPtrToPgtype(nil)))
	assert.Equal(t, pgtype.Text{String: "x", Valid: true}, pgconv.StringToPgtype("x"))
}

func TestTimePtrRoundTrip(t *testing.T) {
	ts := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

	got := pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(&ts))
	if diff := cmp.Diff(&ts, got); diff != "" {
		t.Errorf("time round trip mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
	assert.Equal(t, ts, pgconv.TimeFromPgtype(pgconv.TimeToPgtype(ts)))
}

func TestDateNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	noon := time.Date(2026, 9, 1, 12, 45, 0, 0, loc)

	got := pgconv.DateFromPgtype(pgconv.DateToPgtype(noon))

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDurationFromPgTime(t *testing.T) {
	nineThirty := 9*time.Hour + 30*time.Minute

	pt := pgconv.PgTimeFromDuration(nineThirty)
	assert.True(t, pt.Valid)
	assert.Equal(t, nineThirty, pgconv.DurationFromPgTime(pt))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(sql.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
	assert.False(t, pgconv.IsNoRows(nil))
}
