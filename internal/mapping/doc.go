// Package mapping converts raw store documents into canonical records.
//
// Mappers are total: any raw document shape seen across collection versions
// produces a record. The store id is always copied; optional fields that are
// missing or carry an unexpected type are left nil, to be defaulted by
// presentation code. Version-specific field names come from the
// collections strategy table.
package mapping
