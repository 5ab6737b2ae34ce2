package ports

import (
	"context"
	"testing"
	"time"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSetupStoreContract runs a suite of tests to verify that a SetupStore implementation
// adheres to the defined interface contract.
func RunSetupStoreContract(t *testing.T, store SetupStore) {
	ctx := context.Background()
	profile := "contract-test-profile-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		setup := domain.Setup{
			RepName:   "Jordan",
			UpdatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		}

		err := store.Save(ctx, profile, setup)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, profile)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Jordan", loaded.RepName)
		assert.True(t, setup.UpdatedAt.Equal(loaded.UpdatedAt), "UpdatedAt should round-trip")
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, profile, domain.Setup{RepName: "First"}))
		require.NoError(t, store.Save(ctx, profile, domain.Setup{RepName: "Second"}))

		loaded, err := store.Load(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, "Second", loaded.RepName)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+profile)
		assert.ErrorIs(t, err, domain.ErrSetupNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, profile, domain.Setup{RepName: "Jordan"})
		require.NoError(t, err)

		err = store.Delete(ctx, profile)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, profile)
		assert.ErrorIs(t, err, domain.ErrSetupNotFound, "Load after Delete should return ErrSetupNotFound")
	})

	t.Run("Reserved-Looking Names", func(t *testing.T) {
		others := profile + "-other"
		require.NoError(t, store.Save(ctx, others, domain.Setup{RepName: "A"}))
		require.NoError(t, store.Save(ctx, "index", domain.Setup{RepName: "B"}))
		defer func() {
			_ = store.Delete(ctx, others)
			_ = store.Delete(ctx, "index")
		}()

		loaded, err := store.Load(ctx, "index")
		require.NoError(t, err)
		assert.Equal(t, "B", loaded.RepName)

		profiles, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, profiles, others)
		assert.Contains(t, profiles, "index")
	})

	t.Run("Rejects Unsafe Names", func(t *testing.T) {
		for _, name := range []string{"", ".", "..", "a/b", `a\b`, "a:b"} {
			assert.Error(t, store.Save(ctx, name, domain.Setup{RepName: "X"}), "profile %q", name)
			_, err := store.Load(ctx, name)
			assert.Error(t, err, "profile %q", name)
		}
	})

	t.Run("List", func(t *testing.T) {
		id1 := profile + "-1"
		id2 := profile + "-2"
		_ = store.Save(ctx, id1, domain.Setup{RepName: "A"})
		_ = store.Save(ctx, id2, domain.Setup{RepName: "B"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		profiles, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, profiles, id1)
		assert.Contains(t, profiles, id2)
	})
}
