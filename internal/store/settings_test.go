package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fireplan/fireplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStoreRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	order := []string{
		domain.BoxTaxableInvesting,
		domain.BoxMax401k,
		domain.BoxModerateDebt,
		domain.BoxHSAIRA,
		domain.BoxHighInterestDebt,
	}
	require.NoError(t, s.SaveBoxOrder(ctx, order))
	assert.Equal(t, order, s.BoxOrder(ctx))

	// Saving again replaces the single row.
	require.NoError(t, s.SaveBoxOrder(ctx, domain.DefaultBoxOrder()))
	assert.Equal(t, domain.DefaultBoxOrder(), s.BoxOrder(ctx))
}

func TestSettingsStoreDefaultWhenEmpty(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, domain.DefaultBoxOrder(), s.BoxOrder(context.Background()))
}

func TestSettingsStoreRejectsInvalidOrder(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	assert.Error(t, s.SaveBoxOrder(ctx, []string{"a", "b"}))
	assert.Error(t, s.SaveBoxOrder(ctx, []string{
		domain.BoxMax401k, domain.BoxMax401k, domain.BoxModerateDebt, domain.BoxHSAIRA, domain.BoxHighInterestDebt,
	}), "duplicate keys are not a permutation")
	assert.Error(t, s.SaveBoxOrder(ctx, nil))
}

// A row written outside the application (or corrupted) must never break reads.
func TestSettingsStoreMalformedRowFallsBack(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.db.ExecContext(ctx, `INSERT INTO settings (id, box_order) VALUES (1, 'not json')`)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBoxOrder(), s.BoxOrder(ctx))

	_, err = s.db.ExecContext(ctx, `UPDATE settings SET box_order = '["unknown","keys"]' WHERE id = 1`)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBoxOrder(), s.BoxOrder(ctx))
}

func TestSettingsStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	order := []string{
		domain.BoxHSAIRA,
		domain.BoxHighInterestDebt,
		domain.BoxModerateDebt,
		domain.BoxMax401k,
		domain.BoxTaxableInvesting,
	}
	require.NoError(t, s.SaveBoxOrder(ctx, order))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, order, s2.BoxOrder(ctx))
}
