package catalog

import (
	"testing"

	"go-registry-console/internal/models"
)

func TestStoreReplaceIsWholesale(t *testing.T) {
	store := NewStore()
	store.Replace("Acme", []models.Device{{ID: 1}, {ID: 2}})
	store.Replace("Acme", []models.Device{{ID: 3}})

	if store.Len() != 1 {
		t.Fatalf("expected list replaced wholesale, got %d devices", store.Len())
	}
	if store.Devices()[0].ID != 3 {
		t.Fatalf("expected device 3, got %d", store.Devices()[0].ID)
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore()
	// A stale response landing after a newer one simply overwrites it.
	store.Replace("Acme", []models.Device{{ID: 1}})
	store.Replace("Globex", []models.Device{{ID: 2}})

	if store.Brand() != "Globex" {
		t.Fatalf("expected brand Globex, got %q", store.Brand())
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Replace("Acme", []models.Device{{ID: 1}})
	store.Clear()

	if store.Brand() != "" || store.Len() != 0 {
		t.Fatalf("expected empty store, got brand=%q len=%d", store.Brand(), store.Len())
	}
}

func TestStoreDevicesReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Replace("Acme", []models.Device{{ID: 1, Marca: "Acme"}})

	devices := store.Devices()
	devices[0].Marca = "mutated"

	if store.Devices()[0].Marca != "Acme" {
		t.Fatal("mutating the returned slice must not affect the store")
	}
}

func TestStoreFiltered(t *testing.T) {
	store := NewStore()
	store.Replace("Acme", []models.Device{
		{ID: 1, Categoria: "Redes", ModeloTecnico: "RTR-1"},
		{ID: 2, Categoria: "Telefonía", ModeloTecnico: "PH-1"},
	})

	got := store.Filtered(models.FilterState{Category: "Redes"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only device 1, got %v", got)
	}
}
