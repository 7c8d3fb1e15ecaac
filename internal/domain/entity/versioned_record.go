package entity

import (
	"time"

	"github.com/google/uuid"
)

// FieldKind is the wire type accepted for an updatable column.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldInteger
	FieldTime
)

// Field maps an API attribute name to its column and mirrors the column's
// storage limits, so bad input is refused before it reaches the store.
type Field struct {
	Column   string
	Kind     FieldKind
	Nullable bool
	// MaxLen caps strings in characters; 0 means unbounded (TEXT).
	MaxLen int
	// Max is an exclusive bound on the absolute value of a number; 0 leaves
	// only the kind's own range. INTEGER columns are always int32.
	Max float64
}

// Column limits shared by the business tables.
const (
	moneyMax  = 1e12 // NUMERIC(14,2)
	bathsMax  = 1e3  // NUMERIC(4,1)
	nameLen   = 128
	emailLen  = 255
	phoneLen  = 64
	statusLen = 32
	sourceLen = 64
	titleLen  = 255
)

// Resource describes one versioned business table and the attributes a
// client may patch. id, version, created_at and updated_at are never patchable.
type Resource struct {
	Name   string
	Table  string
	Fields map[string]Field
}

// AttributeName returns the API name of column, or false if it is not exposed.
func (r *Resource) AttributeName(column string) (string, bool) {
	for name, f := range r.Fields {
		if f.Column == column {
			return name, true
		}
	}

	return "", false
}

// VersionedRow is a business record as the store returns it: columns keyed by column name.
type VersionedRow struct {
	ID        uuid.UUID
	Version   int64
	UpdatedAt time.Time
	Columns   map[string]any
}

// VersionedRecord is a business record as exposed by the API.
type VersionedRecord struct {
	Resource   string         `json:"resource"`
	ID         uuid.UUID      `json:"id"`
	Version    int64          `json:"version"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Attributes map[string]any `json:"attributes"`
}

var (
	escrowStatuses      = []string{"open", "pending", "closed", "cancelled"}
	listingStatuses     = []string{"coming_soon", "active", "pending", "sold", "expired", "withdrawn"}
	leadStatuses        = []string{"new", "contacted", "qualified", "converted", "lost"}
	appointmentStatuses = []string{"scheduled", "confirmed", "completed", "cancelled"}
	clientTypes         = []string{"buyer", "seller", "both", "investor"}
)

// AllowedValues lists the accepted values of enumerated string attributes, keyed by resource then attribute.
//
//nolint:gochecknoglobals
var AllowedValues = map[string]map[string][]string{
	"escrows":      {"escrowStatus": escrowStatuses},
	"listings":     {"listingStatus": listingStatuses},
	"leads":        {"leadStatus": leadStatuses},
	"appointments": {"status": appointmentStatuses},
	"clients":      {"clientType": clientTypes},
}

// Resources is the registry of versioned business record types.
//
//nolint:gochecknoglobals
var Resources = map[string]*Resource{
	"escrows": {
		Name:  "escrows",
		Table: "escrows",
		Fields: map[string]Field{
			"propertyAddress": {Column: "property_address", Kind: FieldString},
			"purchasePrice":   {Column: "purchase_price", Kind: FieldNumber, Max: moneyMax},
			"earnestMoney":    {Column: "earnest_money", Kind: FieldNumber, Max: moneyMax},
			"escrowStatus":    {Column: "escrow_status", Kind: FieldString, MaxLen: statusLen},
			"openingDate":     {Column: "opening_date", Kind: FieldTime, Nullable: true},
			"closingDate":     {Column: "closing_date", Kind: FieldTime, Nullable: true},
			"notes":           {Column: "notes", Kind: FieldString},
		},
	},
	"clients": {
		Name:  "clients",
		Table: "clients",
		Fields: map[string]Field{
			"firstName":  {Column: "first_name", Kind: FieldString, MaxLen: nameLen},
			"lastName":   {Column: "last_name", Kind: FieldString, MaxLen: nameLen},
			"email":      {Column: "email", Kind: FieldString, MaxLen: emailLen},
			"phone":      {Column: "phone", Kind: FieldString, MaxLen: phoneLen},
			"clientType": {Column: "client_type", Kind: FieldString, MaxLen: statusLen},
			"notes":      {Column: "notes", Kind: FieldString},
		},
	},
	"listings": {
		Name:  "listings",
		Table: "listings",
		Fields: map[string]Field{
			"propertyAddress": {Column: "property_address", Kind: FieldString},
			"listPrice":       {Column: "list_price", Kind: FieldNumber, Max: moneyMax},
			"listingStatus":   {Column: "listing_status", Kind: FieldString, MaxLen: statusLen},
			"listingDate":     {Column: "listing_date", Kind: FieldTime, Nullable: true},
			"expirationDate":  {Column: "expiration_date", Kind: FieldTime, Nullable: true},
			"bedrooms":        {Column: "bedrooms", Kind: FieldInteger, Nullable: true},
			"bathrooms":       {Column: "bathrooms", Kind: FieldNumber, Nullable: true, Max: bathsMax},
			"squareFeet":      {Column: "square_feet", Kind: FieldInteger, Nullable: true},
		},
	},
	"leads": {
		Name:  "leads",
		Table: "leads",
		Fields: map[string]Field{
			"firstName":      {Column: "first_name", Kind: FieldString, MaxLen: nameLen},
			"lastName":       {Column: "last_name", Kind: FieldString, MaxLen: nameLen},
			"email":          {Column: "email", Kind: FieldString, MaxLen: emailLen},
			"phone":          {Column: "phone", Kind: FieldString, MaxLen: phoneLen},
			"leadStatus":     {Column: "lead_status", Kind: FieldString, MaxLen: statusLen},
			"leadSource":     {Column: "lead_source", Kind: FieldString, MaxLen: sourceLen},
			"estimatedValue": {Column: "estimated_value", Kind: FieldNumber, Nullable: true, Max: moneyMax},
		},
	},
	"appointments": {
		Name:  "appointments",
		Table: "appointments",
		Fields: map[string]Field{
			"title":     {Column: "title", Kind: FieldString, MaxLen: titleLen},
			"startTime": {Column: "start_time", Kind: FieldTime, Nullable: true},
			"endTime":   {Column: "end_time", Kind: FieldTime, Nullable: true},
			"location":  {Column: "location", Kind: FieldString},
			"status":    {Column: "status", Kind: FieldString, MaxLen: statusLen},
			"notes":     {Column: "notes", Kind: FieldString},
		},
	},
}

// LookupResource returns the registered resource by its route name.
func LookupResource(name string) (*Resource, bool) {
	r, ok := Resources[name]

	return r, ok
}
