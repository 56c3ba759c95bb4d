// Package linkedroles models Discord Linked Roles metadata.
//
// It provides:
//
// - A Schema builder that declares up to five typed custom fields for a platform
// - Structural validation of keys, display names and descriptions (Discord limits)
// - Per-user Metadata instances with typed Set/Get and a stable error model (Issues)
// - The two wire shapes: the schema-registration payload and the per-user value payload
//
// Design policy:
// - Keep the model in the root package; the HTTP client lives under client/.
// - Place wire codecs under codec/, messages under i18n/ and the CLI under cmd/linkedroles.
// - Schemas are immutable after Build; Metadata instances own their values.
//
// Typical usage:
//
//	s := linkedroles.NewSchema("shikimori.me").
//	    Field("anime_watched", linkedroles.IntGTE, "Titles Watched", "total titles watched").
//	    MustBuild()
//
//	descriptors := s.ToSchema() // register once
//
//	m, err := s.New(nil,
//	    linkedroles.With("anime_watched", 9999),
//	    linkedroles.With("platform_username", "imPDA"))
//	payload, err := m.ToPayload() // push per user
package linkedroles
