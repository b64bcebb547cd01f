package serrors_test

import (
	"errors"
	"fmt"
	"testing"
	"typeracer/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrUnavailable,
		serrors.ErrInvalidName,
		serrors.ErrBanned,
		serrors.ErrSessionFull,
		serrors.ErrGameStarted,
		serrors.ErrKicked,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("db down")

	e1 := serrors.With(serrors.ErrNotFound, "session %d not found", 42)
	require.Equal(t, "session 42 not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrInternal, base, "storing race")
	require.Equal(t, "storing race: db down", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrSessionFull)
	require.Equal(t, "SESSION_FULL", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	require.ErrorIs(t, e, serrors.ErrNotFound)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrGameStarted, base, "ready")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrGameStarted, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{name: "nil", err: nil, want: nil},
		{name: "plain", err: errors.New("boom"), want: nil},
		{name: "sentinel", err: serrors.ErrBanned, want: serrors.ErrBanned},
		{name: "semantic", err: serrors.With(serrors.ErrSessionFull, "full"), want: serrors.ErrSessionFull},
		{
			name: "wrapped semantic",
			err:  fmt.Errorf("join: %w", serrors.KindOnly(serrors.ErrKicked)),
			want: serrors.ErrKicked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.KindOf(tt.err))
		})
	}
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnauthorized, base, "no token")
	require.Equal(t, serrors.ErrUnauthorized, e.Kind())
	require.Equal(t, "no token", e.Message())
	require.Equal(t, base, e.Cause())
}
