package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("parse failure")
	err := Wrap("invalid_date_format", "dates must be YYYY-MM-DD", cause)

	require.Equal(t, "dates must be YYYY-MM-DD: parse failure", err.Error())
	require.True(t, IsCode(err, "invalid_date_format"))
	require.False(t, IsCode(err, "other"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "dates must be YYYY-MM-DD", MessageOf(err))
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap("out_of_order_dates", "observed before start", nil))
	require.Equal(t, "out_of_order_dates", CodeOf(err))
	require.Equal(t, "observed before start", MessageOf(err))

	require.Empty(t, CodeOf(errors.New("plain")))
	require.False(t, IsCode(errors.New("plain"), ""))
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
}
