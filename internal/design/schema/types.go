package schema

// TargetDimensions carries requested overall dimensions as display strings.
// Values keep their unit context via Units rather than being normalized to
// numbers; downstream consumers (cut list, BOM) expect the literal strings.
type TargetDimensions struct {
	Length string `json:"length,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
	Depth  string `json:"depth,omitempty"`
	Units  string `json:"units,omitempty"`
}

// DesignBrief is the accumulating structured summary of a user's furniture
// request. Fields are merged incrementally by the brief extractor; a brief is
// only replaced wholesale on an explicit new-design reset.
type DesignBrief struct {
	Description      string            `json:"description"`
	FurnitureType    string            `json:"furnitureType,omitempty"`
	Style            string            `json:"style,omitempty"`
	Material         string            `json:"material,omitempty"`
	TargetDimensions *TargetDimensions `json:"targetDimensions,omitempty"`
	JoineryMethods   []string          `json:"joineryMethods,omitempty"`
}

// ComponentModel is a named, possibly repeated physical part. Dimensions is a
// free-form display string like "L:48in W:30in T:1.5in"; quantity N stands
// for N physical parts.
type ComponentModel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Dimensions  string  `json:"dimensions"`
	MaterialID  string  `json:"materialId,omitempty"`
	Description string  `json:"description,omitempty"`
	Tolerance   string  `json:"tolerance,omitempty"`
}

type MaterialModel struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Type                 string            `json:"type"`
	Grade                string            `json:"grade,omitempty"`
	Finish               string            `json:"finish,omitempty"`
	Vendor               string            `json:"vendor,omitempty"`
	SKU                  string            `json:"sku,omitempty"`
	PricePerUnit         *float64          `json:"pricePerUnit,omitempty"`
	Unit                 string            `json:"unit,omitempty"`
	MechanicalProperties map[string]string `json:"mechanicalProperties,omitempty"`
}

// HardwareModel is a MaterialModel refinement: type is pinned to the literal
// "Hardware" and two extra optional fields are allowed.
type HardwareModel struct {
	MaterialModel
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
}

type JoineryModel struct {
	ID                  string   `json:"id"`
	Type                string   `json:"type"`
	StrengthRating      *float64 `json:"strengthRating,omitempty"`
	Description         string   `json:"description,omitempty"`
	CompatibleMaterials []string `json:"compatibleMaterials,omitempty"`
	CompatibleThickness string   `json:"compatibleThickness,omitempty"`
	RequiredTools       []string `json:"requiredTools,omitempty"`
}

type CutListItem struct {
	ID             string  `json:"id"`
	ComponentName  string  `json:"componentName"`
	PartName       string  `json:"partName"`
	Quantity       float64 `json:"quantity"`
	Length         string  `json:"length"`
	Width          string  `json:"width"`
	Thickness      string  `json:"thickness"`
	Material       string  `json:"material"`
	GrainDirection string  `json:"grainDirection,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type BillOfMaterialsItem struct {
	ID       string   `json:"id"`
	ItemID   string   `json:"itemId"`
	ItemName string   `json:"itemName"`
	ItemType string   `json:"itemType"`
	Quantity float64  `json:"quantity"`
	UnitCost *float64 `json:"unitCost,omitempty"`
	TotalCost *float64 `json:"totalCost,omitempty"`
	Supplier string   `json:"supplier,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// AssemblyStep ordering is authoritative via StepNumber, not array position.
type AssemblyStep struct {
	StepNumber         float64  `json:"stepNumber"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	ComponentsInvolved []string `json:"componentsInvolved"`
	JoineryUsed        []string `json:"joineryUsed,omitempty"`
	HardwareUsed       []string `json:"hardwareUsed,omitempty"`
	ToolsRequired      []string `json:"toolsRequired,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	EstimatedTime      string   `json:"estimatedTime,omitempty"`
}

type SupplierQuote struct {
	SupplierID string  `json:"supplierId"`
	QuoteID    string  `json:"quoteId"`
	TotalCost  float64 `json:"totalCost"`
	LeadTime   string  `json:"leadTime"`
}

// BuildPlan is the aggregate root of a generated design. Child entities are
// owned exclusively by the plan; their ids are unique only within its arrays.
type BuildPlan struct {
	ID                   string                `json:"id"`
	UserID               string                `json:"userId"`
	PlanName             string                `json:"planName"`
	DesignBrief          DesignBrief           `json:"designBrief"`
	CreatedAt            string                `json:"createdAt"`
	UpdatedAt            string                `json:"updatedAt"`
	Components           []ComponentModel      `json:"components"`
	Materials            []MaterialModel       `json:"materials"`
	Hardware             []HardwareModel       `json:"hardware"`
	Joinery              []JoineryModel        `json:"joinery"`
	CutList              []CutListItem         `json:"cutList"`
	BillOfMaterials      []BillOfMaterialsItem `json:"billOfMaterials"`
	AssemblyInstructions []AssemblyStep        `json:"assemblyInstructions"`
	ModelURL             string                `json:"modelUrl,omitempty"`
	ExplodedModelURL     string                `json:"explodedModelUrl,omitempty"`
	Status               string                `json:"status"`
	Version              float64               `json:"version"`
	Notes                string                `json:"notes,omitempty"`
	DxfURL               string                `json:"dxfUrl,omitempty"`
	CamInstructions      string                `json:"camInstructions,omitempty"`
	EstimatedCost        *float64              `json:"estimatedCost,omitempty"`
	SupplierQuotes       []SupplierQuote       `json:"supplierQuotes,omitempty"`
}

// Plan status values.
const (
	StatusDraft         = "Draft"
	StatusPendingReview = "PendingReview"
	StatusApproved      = "Approved"
	StatusArchived      = "Archived"
)

// Material type values. Hardware entries must use MaterialTypeHardware.
const (
	MaterialTypeLumber    = "Lumber"
	MaterialTypeSheetGood = "SheetGood"
	MaterialTypeHardware  = "Hardware"
	MaterialTypeOther     = "Other"
)
