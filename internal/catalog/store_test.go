package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func TestStoreComponents(t *testing.T) {
	store, mock := setupStore(t)

	dims, _ := json.Marshal(map[string]any{"standard": map[string]float64{"length": 28.5}})
	rows := sqlmock.NewRows([]string{
		"id", "component", "subtype", "dimensions", "tolerances",
		"recommended_material", "typical_uses", "notes",
	}).AddRow(
		"c1", "leg", "tapered", dims, "+/- 1/32in",
		"hard maple", `{"tables","desks"}`, "taper on two inside faces",
	)
	mock.ExpectQuery(`SELECT (.+) FROM furniture_components ORDER BY component, subtype`).
		WillReturnRows(rows)

	items, err := store.Components(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "leg", items[0].Component)
	assert.Equal(t, "tapered", items[0].Subtype)
	assert.Equal(t, []string{"tables", "desks"}, items[0].TypicalUses)
	assert.JSONEq(t, string(dims), string(items[0].Dimensions))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreComponentsByType(t *testing.T) {
	store, mock := setupStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "component", "subtype", "dimensions", "tolerances",
		"recommended_material", "typical_uses", "notes",
	}).AddRow("c2", "shelf", "adjustable", []byte(`{}`), "", "plywood", `{"bookshelves"}`, "")
	mock.ExpectQuery(`SELECT (.+) FROM furniture_components WHERE component = \$1 ORDER BY subtype`).
		WithArgs("shelf").
		WillReturnRows(rows)

	items, err := store.ComponentsByType(context.Background(), "shelf")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "shelf", items[0].Component)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLumber(t *testing.T) {
	store, mock := setupStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "nominal_size", "actual_size", "common_lengths", "tolerances", "notes",
	}).AddRow("l1", "2x4", []byte(`{"width":3.5,"thickness":1.5}`), []byte(`[8,10,12]`), "+/- 1/16in", "")
	mock.ExpectQuery(`SELECT (.+) FROM lumber_materials ORDER BY nominal_size`).
		WillReturnRows(rows)

	items, err := store.Lumber(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2x4", items[0].NominalSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSheetGoodsQueryError(t *testing.T) {
	store, mock := setupStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM sheet_materials`).
		WillReturnError(assert.AnError)

	_, err := store.SheetGoods(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreOtherMaterials(t *testing.T) {
	store, mock := setupStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "type", "density", "modulus_elasticity", "notes",
	}).AddRow("o1", "MDF", "engineered", []byte(`{"value":750,"unit":"kg/m3"}`), []byte(`{}`), "paint grade")
	mock.ExpectQuery(`SELECT (.+) FROM other_materials ORDER BY name`).
		WillReturnRows(rows)

	items, err := store.OtherMaterials(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "MDF", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
