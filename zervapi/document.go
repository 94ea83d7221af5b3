/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package zervapi implements the self-describing serialized Zerv record
// (spec §6.2): a textual form carrying a schema name and a vars snapshot,
// consumed from stdin and emitted as the "zerv" output format. Schema
// bodies are addressed by their preset name rather than serialized
// structurally — a custom (non-preset) schema round-trips through its name
// only if the caller re-resolves the same custom body, a simplification
// noted in DESIGN.md.
package zervapi

import (
	"encoding/json"
	"fmt"

	zervapierrors "zerv.dev/zerv/zervapi/errors"

	"zerv.dev/zerv/schema"
	"zerv.dev/zerv/vcs"
	"zerv.dev/zerv/version/zerv"
)

func zervHash(s string) (vcs.Hash, error) {
	if s == "" {
		return "", nil
	}
	return vcs.ParseHash(s)
}

func zervShortHash(s string) (vcs.ShortHash, error) {
	if s == "" {
		return "", nil
	}
	return vcs.ParseShortHash(s)
}

// Document is the on-the-wire shape of a serialized Zerv: the schema's
// preset name plus a plain snapshot of its vars.
type Document struct {
	Schema string   `json:"schema"`
	Vars   varsWire `json:"vars"`
}

// varsWire mirrors zerv.Vars so marshaling never depends on zerv.Vars's
// internal layout changing in a JSON-incompatible way. It carries every
// field except LastBranch, LastCommitHash, LastCommitHashShort and
// LastTimestamp, which are not serialized and come back zero from Unmarshal.
type varsWire struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`

	Epoch uint64 `json:"epoch"`

	PreReleaseLabel  string  `json:"pre_release_label,omitempty"`
	PreReleaseNumber *uint32 `json:"pre_release_number,omitempty"`
	Post             *uint32 `json:"post,omitempty"`
	Dev              *uint32 `json:"dev,omitempty"`

	Branch          string `json:"branch,omitempty"`
	Distance        uint32 `json:"distance"`
	Dirty           bool   `json:"dirty"`
	CommitHash      string `json:"commit_hash,omitempty"`
	CommitHashShort string `json:"commit_hash_short,omitempty"`
	Timestamp       int64  `json:"timestamp"`

	Custom map[string]string `json:"custom,omitempty"`
}

// Marshal renders z as the serialized Zerv text format.
func Marshal(z zerv.Zerv) (string, error) {
	doc := Document{
		Schema: z.Schema.Name,
		Vars: varsWire{
			Major:            z.Vars.Major,
			Minor:            z.Vars.Minor,
			Patch:            z.Vars.Patch,
			Epoch:            z.Vars.Epoch,
			PreReleaseLabel:  z.Vars.PreRelease.Label,
			PreReleaseNumber: z.Vars.PreRelease.Number,
			Post:             z.Vars.Post,
			Dev:              z.Vars.Dev,
			Branch:           z.Vars.Branch,
			Distance:         z.Vars.Distance,
			Dirty:            z.Vars.Dirty,
			CommitHash:       z.Vars.CommitHash.String(),
			CommitHashShort:  z.Vars.CommitHashShort.String(),
			Timestamp:        z.Vars.Timestamp,
			Custom:           z.Vars.Custom,
		},
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("zerv: failed to serialize zerv document: %w", err)
	}
	return string(data), nil
}

// Unmarshal parses text as a serialized Zerv document and resolves its
// schema name through the preset catalogue. text that is not structurally a
// Document is rejected with a StdinError directing the caller to the
// appropriate input format, per spec §6.2.
func Unmarshal(text string) (zerv.Zerv, error) {
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return zerv.Zerv{}, &zervapierrors.StdinError{Reason: fmt.Sprintf("input is not a valid zerv document: %v", err)}
	}
	if doc.Schema == "" {
		return zerv.Zerv{}, &zervapierrors.StdinError{Reason: "zerv document missing schema name"}
	}

	resolved, err := schema.Resolve(doc.Schema)
	if err != nil {
		return zerv.Zerv{}, &zervapierrors.UnknownSchema{Name: doc.Schema}
	}

	hash, err := zervHash(doc.Vars.CommitHash)
	if err != nil {
		return zerv.Zerv{}, &zervapierrors.StdinError{Reason: err.Error()}
	}
	shortHash, err := zervShortHash(doc.Vars.CommitHashShort)
	if err != nil {
		return zerv.Zerv{}, &zervapierrors.StdinError{Reason: err.Error()}
	}

	return zerv.Zerv{
		Schema: resolved,
		Vars: zerv.Vars{
			Major: doc.Vars.Major,
			Minor: doc.Vars.Minor,
			Patch: doc.Vars.Patch,
			Epoch: doc.Vars.Epoch,
			PreRelease: zerv.PreRelease{
				Label:  doc.Vars.PreReleaseLabel,
				Number: doc.Vars.PreReleaseNumber,
			},
			Post:            doc.Vars.Post,
			Dev:             doc.Vars.Dev,
			Branch:          doc.Vars.Branch,
			Distance:        doc.Vars.Distance,
			Dirty:           doc.Vars.Dirty,
			CommitHash:      hash,
			CommitHashShort: shortHash,
			Timestamp:       doc.Vars.Timestamp,
			Custom:          doc.Vars.Custom,
		},
	}, nil
}
