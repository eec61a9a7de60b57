package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// Store reads the woodworking reference catalog: standard component
// dimension tables and stock material data. The catalog is seeded out of
// band and treated as read-only by the service.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// FurnitureComponent is a standard component entry with typical dimensions
// and tolerances per subtype.
type FurnitureComponent struct {
	ID                  string          `json:"id"`
	Component           string          `json:"component"`
	Subtype             string          `json:"subtype"`
	Dimensions          json.RawMessage `json:"dimensions"`
	Tolerances          string          `json:"tolerances"`
	RecommendedMaterial string          `json:"recommended_material"`
	TypicalUses         []string        `json:"typical_uses"`
	Notes               string          `json:"notes"`
}

// LumberMaterial maps nominal lumber sizes to actual dimensions.
type LumberMaterial struct {
	ID            string          `json:"id"`
	NominalSize   string          `json:"nominal_size"`
	ActualSize    json.RawMessage `json:"actual_size"`
	CommonLengths json.RawMessage `json:"common_lengths"`
	Tolerances    string          `json:"tolerances"`
	Notes         string          `json:"notes"`
}

// SheetMaterial describes plywood and other sheet goods.
type SheetMaterial struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	NominalSheetSize json.RawMessage `json:"nominal_sheet_size"`
	ThicknessOptions json.RawMessage `json:"thickness_options"`
	Tolerances       string          `json:"tolerances"`
	Notes            string          `json:"notes"`
}

// OtherMaterial carries mechanical property data for non-stock materials.
type OtherMaterial struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	Density           json.RawMessage `json:"density"`
	ModulusElasticity json.RawMessage `json:"modulus_elasticity"`
	Notes             string          `json:"notes"`
}

const componentColumns = `id, component, subtype, dimensions, tolerances, recommended_material, typical_uses, notes`

// Components lists every standard component entry.
func (s *Store) Components(ctx context.Context) ([]FurnitureComponent, error) {
	q := fmt.Sprintf(`SELECT %s FROM furniture_components ORDER BY component, subtype`, componentColumns)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query components: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

// ComponentsByType lists standard component entries for one component type.
func (s *Store) ComponentsByType(ctx context.Context, componentType string) ([]FurnitureComponent, error) {
	q := fmt.Sprintf(`SELECT %s FROM furniture_components WHERE component = $1 ORDER BY subtype`, componentColumns)
	rows, err := s.db.QueryContext(ctx, q, componentType)
	if err != nil {
		return nil, fmt.Errorf("query components by type: %w", err)
	}
	defer rows.Close()
	return scanComponents(rows)
}

func scanComponents(rows *sql.Rows) ([]FurnitureComponent, error) {
	out := make([]FurnitureComponent, 0, 16)
	for rows.Next() {
		var c FurnitureComponent
		if err := rows.Scan(
			&c.ID, &c.Component, &c.Subtype, &c.Dimensions, &c.Tolerances,
			&c.RecommendedMaterial, pq.Array(&c.TypicalUses), &c.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Lumber lists the nominal-to-actual lumber size table.
func (s *Store) Lumber(ctx context.Context) ([]LumberMaterial, error) {
	const q = `SELECT id, nominal_size, actual_size, common_lengths, tolerances, notes
FROM lumber_materials ORDER BY nominal_size`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query lumber: %w", err)
	}
	defer rows.Close()

	out := make([]LumberMaterial, 0, 16)
	for rows.Next() {
		var m LumberMaterial
		if err := rows.Scan(&m.ID, &m.NominalSize, &m.ActualSize, &m.CommonLengths, &m.Tolerances, &m.Notes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SheetGoods lists the sheet material table.
func (s *Store) SheetGoods(ctx context.Context) ([]SheetMaterial, error) {
	const q = `SELECT id, type, nominal_sheet_size, thickness_options, tolerances, notes
FROM sheet_materials ORDER BY type`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query sheet goods: %w", err)
	}
	defer rows.Close()

	out := make([]SheetMaterial, 0, 16)
	for rows.Next() {
		var m SheetMaterial
		if err := rows.Scan(&m.ID, &m.Type, &m.NominalSheetSize, &m.ThicknessOptions, &m.Tolerances, &m.Notes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// OtherMaterials lists the remaining material property table.
func (s *Store) OtherMaterials(ctx context.Context) ([]OtherMaterial, error) {
	const q = `SELECT id, name, type, density, modulus_elasticity, notes
FROM other_materials ORDER BY name`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query other materials: %w", err)
	}
	defer rows.Close()

	out := make([]OtherMaterial, 0, 16)
	for rows.Next() {
		var m OtherMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.Density, &m.ModulusElasticity, &m.Notes); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
