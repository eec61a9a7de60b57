package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"time"
)

// Violation describes a single schema failure at a JSON path.
type Violation struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", v.Path, v.Expected, v.Actual)
}

// DecodeBuildPlan validates an untrusted JSON document against the closed
// BuildPlan schema and returns the typed plan. The document is accepted as a
// whole or rejected as a whole: on any violation the returned plan is nil and
// the full violation list is returned. Validation never panics.
func DecodeBuildPlan(raw []byte) (*BuildPlan, []Violation) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, []Violation{{Path: "$", Expected: "valid JSON document", Actual: err.Error()}}
	}

	vs := ValidateBuildPlan(doc)
	if len(vs) > 0 {
		return nil, vs
	}

	var plan BuildPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		// Validation guarantees field shapes, so this indicates a schema/type drift.
		return nil, []Violation{{Path: "$", Expected: "decodable build plan", Actual: err.Error()}}
	}
	return &plan, nil
}

// ValidateBuildPlan checks a decoded JSON value against the BuildPlan schema.
// Every entity schema is closed: undeclared keys are violations.
func ValidateBuildPlan(doc any) []Violation {
	c, vs := object("$", doc)
	if c == nil {
		return vs
	}

	c.nonEmptyStr("id", true)
	c.nonEmptyStr("userId", true)
	c.nonEmptyStr("planName", true)

	if brief, ok := c.child("designBrief", true); ok {
		c.merge(validateBrief("$.designBrief", brief))
	}

	c.datetime("createdAt")
	c.datetime("updatedAt")

	c.each("components", true, validateComponent)
	c.each("materials", true, validateMaterial)
	c.each("hardware", true, validateHardware)
	c.each("joinery", true, validateJoinery)
	c.each("cutList", true, validateCutListItem)
	c.each("billOfMaterials", true, validateBOMItem)
	c.each("assemblyInstructions", true, validateAssemblyStep)

	c.urlStr("modelUrl")
	c.urlStr("explodedModelUrl")
	c.urlStr("dxfUrl")

	c.enum("status", true, StatusDraft, StatusPendingReview, StatusApproved, StatusArchived)
	c.intNum("version", true)

	c.str("notes", false)
	c.str("camInstructions", false)
	c.num("estimatedCost", false)
	c.each("supplierQuotes", false, validateSupplierQuote)

	return c.finish()
}

func validateBrief(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.str("description", true)
	c.str("furnitureType", false)
	c.str("style", false)
	c.str("material", false)
	if td, ok := c.child("targetDimensions", false); ok {
		c.merge(validateTargetDimensions(path+".targetDimensions", td))
	}
	c.strSlice("joineryMethods", false)
	return c.finish()
}

func validateTargetDimensions(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.str("length", false)
	c.str("width", false)
	c.str("height", false)
	c.str("depth", false)
	c.enum("units", false, "in", "cm", "mm")
	return c.finish()
}

func validateComponent(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.nonEmptyStr("id", true)
	c.nonEmptyStr("name", true)
	if q, ok := c.intNum("quantity", true); ok && q < 1 {
		c.add("quantity", "integer >= 1", fmt.Sprintf("number %v", q))
	}
	c.str("dimensions", true)
	c.str("materialId", false)
	c.str("description", false)
	c.str("tolerance", false)
	return c.finish()
}

// materialFields covers the shared Material shape. Hardware reuses it with the
// type pinned to "Hardware" and two extra optional fields.
func materialFields(c *checker, hardware bool) {
	c.nonEmptyStr("id", true)
	c.nonEmptyStr("name", true)
	if hardware {
		c.literal("type", MaterialTypeHardware)
	} else {
		c.enum("type", true, MaterialTypeLumber, MaterialTypeSheetGood, MaterialTypeHardware, MaterialTypeOther)
	}
	c.str("grade", false)
	c.str("finish", false)
	c.str("vendor", false)
	c.str("sku", false)
	c.num("pricePerUnit", false)
	c.str("unit", false)
	c.strMap("mechanicalProperties")
}

func validateMaterial(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	materialFields(c, false)
	return c.finish()
}

func validateHardware(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	materialFields(c, true)
	c.str("size", false)
	c.str("material", false)
	return c.finish()
}

func validateJoinery(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.nonEmptyStr("id", true)
	c.nonEmptyStr("type", true)
	c.num("strengthRating", false)
	c.str("description", false)
	c.strSlice("compatibleMaterials", false)
	c.str("compatibleThickness", false)
	c.strSlice("requiredTools", false)
	return c.finish()
}

func validateCutListItem(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.nonEmptyStr("id", true)
	c.nonEmptyStr("componentName", true)
	c.nonEmptyStr("partName", true)
	c.num("quantity", true)
	c.str("length", true)
	c.str("width", true)
	c.str("thickness", true)
	c.str("material", true)
	c.enum("grainDirection", false, "Parallel", "Perpendicular", "Any")
	c.str("notes", false)
	return c.finish()
}

func validateBOMItem(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.nonEmptyStr("id", true)
	c.nonEmptyStr("itemId", true)
	c.nonEmptyStr("itemName", true)
	c.enum("itemType", true, "Material", "Hardware", "Other")
	c.num("quantity", true)
	c.num("unitCost", false)
	c.num("totalCost", false)
	c.str("supplier", false)
	c.str("notes", false)
	return c.finish()
}

func validateAssemblyStep(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.num("stepNumber", true)
	c.nonEmptyStr("title", true)
	c.nonEmptyStr("description", true)
	c.strSlice("componentsInvolved", true)
	c.strSlice("joineryUsed", false)
	c.strSlice("hardwareUsed", false)
	c.strSlice("toolsRequired", false)
	c.str("imageUrl", false)
	c.str("estimatedTime", false)
	return c.finish()
}

func validateSupplierQuote(path string, v any) []Violation {
	c, vs := object(path, v)
	if c == nil {
		return vs
	}
	c.nonEmptyStr("supplierId", true)
	c.nonEmptyStr("quoteId", true)
	c.num("totalCost", true)
	c.str("leadTime", true)
	return c.finish()
}

// checker accumulates violations for one object and tracks which keys the
// entity schema declares, so finish() can reject everything else.
type checker struct {
	path     string
	m        map[string]any
	declared map[string]bool
	vs       []Violation
}

func object(path string, v any) (*checker, []Violation) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, []Violation{{Path: path, Expected: "object", Actual: describe(v)}}
	}
	return &checker{path: path, m: m, declared: map[string]bool{}}, nil
}

func (c *checker) add(key, expected, actual string) {
	c.vs = append(c.vs, Violation{Path: c.path + "." + key, Expected: expected, Actual: actual})
}

func (c *checker) merge(vs []Violation) {
	c.vs = append(c.vs, vs...)
}

func (c *checker) lookup(key string, required bool, expected string) (any, bool) {
	c.declared[key] = true
	v, ok := c.m[key]
	if !ok {
		if required {
			c.add(key, expected, "missing")
		}
		return nil, false
	}
	return v, true
}

func (c *checker) str(key string, required bool) (string, bool) {
	v, ok := c.lookup(key, required, "string")
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		c.add(key, "string", describe(v))
		return "", false
	}
	return s, true
}

func (c *checker) nonEmptyStr(key string, required bool) (string, bool) {
	s, ok := c.str(key, required)
	if !ok {
		return "", false
	}
	if s == "" {
		c.add(key, "non-empty string", `string ""`)
		return "", false
	}
	return s, true
}

func (c *checker) num(key string, required bool) (float64, bool) {
	v, ok := c.lookup(key, required, "number")
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		c.add(key, "number", describe(v))
		return 0, false
	}
	return f, true
}

func (c *checker) intNum(key string, required bool) (float64, bool) {
	f, ok := c.num(key, required)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		c.add(key, "integer", fmt.Sprintf("number %v", f))
		return 0, false
	}
	return f, true
}

func (c *checker) enum(key string, required bool, values ...string) {
	s, ok := c.str(key, required)
	if !ok {
		return
	}
	for _, val := range values {
		if s == val {
			return
		}
	}
	c.add(key, "one of "+join(values), fmt.Sprintf("string %q", s))
}

func (c *checker) literal(key, value string) {
	s, ok := c.str(key, true)
	if !ok {
		return
	}
	if s != value {
		c.add(key, fmt.Sprintf("literal %q", value), fmt.Sprintf("string %q", s))
	}
}

func (c *checker) datetime(key string) {
	s, ok := c.str(key, true)
	if !ok {
		return
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		c.add(key, "ISO-8601 date-time string", fmt.Sprintf("string %q", s))
	}
}

func (c *checker) urlStr(key string) {
	s, ok := c.str(key, false)
	if !ok {
		return
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.add(key, "valid URL", fmt.Sprintf("string %q", s))
	}
}

func (c *checker) strSlice(key string, required bool) {
	v, ok := c.lookup(key, required, "array of strings")
	if !ok {
		return
	}
	items, ok := v.([]any)
	if !ok {
		c.add(key, "array of strings", describe(v))
		return
	}
	for i, it := range items {
		if _, ok := it.(string); !ok {
			c.vs = append(c.vs, Violation{
				Path:     fmt.Sprintf("%s.%s[%d]", c.path, key, i),
				Expected: "string",
				Actual:   describe(it),
			})
		}
	}
}

func (c *checker) strMap(key string) {
	v, ok := c.lookup(key, false, "object of strings")
	if !ok {
		return
	}
	m, ok := v.(map[string]any)
	if !ok {
		c.add(key, "object of strings", describe(v))
		return
	}
	for k, it := range m {
		if _, ok := it.(string); !ok {
			c.vs = append(c.vs, Violation{
				Path:     c.path + "." + key + "." + k,
				Expected: "string",
				Actual:   describe(it),
			})
		}
	}
}

func (c *checker) child(key string, required bool) (any, bool) {
	return c.lookup(key, required, "object")
}

// each validates every element of an array field with the given entity
// validator.
func (c *checker) each(key string, required bool, fn func(path string, v any) []Violation) {
	v, ok := c.lookup(key, required, "array")
	if !ok {
		return
	}
	items, ok := v.([]any)
	if !ok {
		c.add(key, "array", describe(v))
		return
	}
	for i, it := range items {
		c.merge(fn(fmt.Sprintf("%s.%s[%d]", c.path, key, i), it))
	}
}

func (c *checker) finish() []Violation {
	var extra []string
	for k := range c.m {
		if !c.declared[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		c.vs = append(c.vs, Violation{
			Path:     c.path + "." + k,
			Expected: "declared field",
			Actual:   "undeclared field " + describe(c.m[k]),
		})
	}
	return c.vs
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", t)
	case float64:
		return fmt.Sprintf("number %v", t)
	case bool:
		return fmt.Sprintf("boolean %v", t)
	case []any:
		return fmt.Sprintf("array of %d", len(t))
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += "|"
		}
		out += v
	}
	return out
}
