package litigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedFieldsDiff(t *testing.T) {
	t.Run("no changes", func(t *testing.T) {
		f := TrackedFields{Status1: "Dilekçe Yazılacak", Note1: "x"}
		assert.Empty(t, f.Diff(f))
	})

	t.Run("status and hearing change", func(t *testing.T) {
		before := TrackedFields{Status1: "Dilekçe Yazılacak", HearingDate: "2025-03-01"}
		after := TrackedFields{Status1: "Duruşma Bekleniyor", HearingDate: "2025-04-01"}

		changes := before.Diff(after)
		require.Len(t, changes, 2)

		assert.Equal(t, "status_1", changes[0].Field)
		assert.Equal(t, "Durum 1", changes[0].Label)
		assert.True(t, changes[0].IsStatus)
		assert.Equal(t, "Dilekçe Yazılacak", changes[0].Old)
		assert.Equal(t, "Duruşma Bekleniyor", changes[0].New)

		assert.Equal(t, "durusma_tarihi", changes[1].Field)
		assert.True(t, changes[1].IsDate)
	})

	t.Run("cleared status", func(t *testing.T) {
		before := TrackedFields{Status2: "İcra Takibi"}
		changes := before.Diff(TrackedFields{})
		require.Len(t, changes, 1)
		assert.Equal(t, "status_2", changes[0].Field)
		assert.Empty(t, changes[0].New)
	})
}

func TestClientRole(t *testing.T) {
	assert.True(t, RolePlaintiff.IsValid())
	assert.False(t, ClientRole("Gardiyan").IsValid())
	assert.Equal(t, "DCI", RolePlaintiff.Tag())
	assert.Equal(t, "BRC", RoleDebtor.Tag())
	// unknown roles keep their raw value in table cells
	assert.Equal(t, "Eski Rol", ClientRole("Eski Rol").Tag())
	assert.Len(t, AllClientRoles, 10)
}

func TestIsClosed(t *testing.T) {
	assert.True(t, IsClosed("kapanan dosya", ""))
	assert.True(t, IsClosed("", "  Kapanan Dosya  "))
	assert.False(t, IsClosed("Duruşma Bekleniyor", "İcra Takibi"))
	// Turkish casing: dotless ı must survive upper-casing
	assert.Equal(t, "KAPANAN DOSYA", NormalizeStatusName("kapanan dosya"))
	assert.Equal(t, "İCRA", NormalizeStatusName("icra"))
}
