// Package config loads the analyzer's data-driven inputs: accessory
// catalog, sentiment lexicon, issue taxonomy, and the application
// config file. Every loader falls back to built-in defaults when no
// path is given, and fails loudly on malformed or ambiguous input.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/headsetlab/comfortscan/internal/model"
)

// DefaultCatalogEntries returns the built-in accessory catalog. Aliases
// are matched case-insensitively at word boundaries, longest first.
func DefaultCatalogEntries() []model.CatalogEntry {
	return []model.CatalogEntry{
		// Head straps.
		{CanonicalName: "BoboVR M3 Pro", Type: "head_strap", Aliases: []string{"bobovr", "bobo vr", "bobo m3", "m3 pro", "m3pro"}},
		{CanonicalName: "Kiwi Design Elite Strap", Type: "head_strap", Aliases: []string{"kiwi elite", "kiwi strap", "kiwi design"}},
		{CanonicalName: "Meta Elite Strap", Type: "head_strap", Aliases: []string{"elite strap", "meta elite", "quest 3 elite"}},
		{CanonicalName: "AMVR Head Strap", Type: "head_strap", Aliases: []string{"amvr strap", "amvr head"}},
		{CanonicalName: "DESTEK Head Strap", Type: "head_strap", Aliases: []string{"destek strap", "destek head"}},
		{CanonicalName: "Globular Cluster CMT3", Type: "head_strap", Aliases: []string{"globular cluster", "halo strap"}},
		{CanonicalName: "YOGES Head Strap", Type: "head_strap", Aliases: []string{"yoges strap"}},
		{CanonicalName: "Eyglo Head Strap", Type: "head_strap", Aliases: []string{"eyglo strap"}},
		{CanonicalName: "Esimen Head Strap", Type: "head_strap", Aliases: []string{"esimen strap"}},
		{CanonicalName: "Aubika Head Strap", Type: "head_strap", Aliases: []string{"aubika strap"}},
		{CanonicalName: "Stock Strap", Type: "head_strap", Aliases: []string{"stock strap", "default strap", "included strap"}},

		// Facial interfaces.
		{CanonicalName: "VR Cover Facial Interface", Type: "face_cover", Aliases: []string{"vr cover", "vrcover"}},
		{CanonicalName: "AMVR Facial Interface", Type: "face_cover", Aliases: []string{"amvr face", "amvr facial", "amvr interface"}},
		{CanonicalName: "Kiwi Design Facial Interface", Type: "face_cover", Aliases: []string{"kiwi face", "kiwi interface"}},
		{CanonicalName: "Silicone Face Cover", Type: "face_cover", Aliases: []string{"silicone cover", "silicone face"}},
		{CanonicalName: "PU Leather Face Cover", Type: "face_cover", Aliases: []string{"pu leather", "leather face"}},
		{CanonicalName: "Fitness Facial Interface", Type: "face_cover", Aliases: []string{"fitness face", "workout face"}},
		{CanonicalName: "VR Panda Face Cover", Type: "face_cover", Aliases: []string{"vrpanda", "vr panda"}},

		// Batteries.
		{CanonicalName: "BoboVR Battery Pack", Type: "battery", Aliases: []string{"bobo battery", "bobovr battery", "m3 battery"}},
		{CanonicalName: "Anker Power Bank", Type: "battery", Aliases: []string{"anker", "power bank"}},
		{CanonicalName: "Elite Strap With Battery", Type: "battery", Aliases: []string{"elite battery", "battery strap"}},
		{CanonicalName: "Rebuff Reality VR Power", Type: "battery", Aliases: []string{"rebuff reality", "vr power"}},
		{CanonicalName: "Kiwi Design Battery Strap", Type: "battery", Aliases: []string{"kiwi battery"}},

		// Lenses.
		{CanonicalName: "ZenGuard Lens Protector", Type: "lens", Aliases: []string{"zenguard", "zen guard", "lens protector"}},
		{CanonicalName: "Prescription Lens Inserts", Type: "lens", Aliases: []string{"prescription lens", "prescription insert"}},
		{CanonicalName: "VR Optician Lenses", Type: "lens", Aliases: []string{"vr optician"}},
		{CanonicalName: "VR Wave Lenses", Type: "lens", Aliases: []string{"vr wave"}},
		{CanonicalName: "WIDMOvr Lenses", Type: "lens", Aliases: []string{"widmo"}},
		{CanonicalName: "Reloptix Lens Inserts", Type: "lens", Aliases: []string{"reloptix"}},
		{CanonicalName: "HONS VR Lenses", Type: "lens", Aliases: []string{"honsvr"}},
		{CanonicalName: "VR Lens Lab Lenses", Type: "lens", Aliases: []string{"vr lens lab"}},

		// Controller accessories.
		{CanonicalName: "Controller Grips", Type: "controller", Aliases: []string{"controller grip", "grips", "controller cover", "silicone grip"}},
		{CanonicalName: "Knuckle Straps", Type: "controller", Aliases: []string{"knuckle strap", "hand strap"}},
		{CanonicalName: "AMVR Controller Grips", Type: "controller", Aliases: []string{"amvr grip"}},
		{CanonicalName: "Kiwi Design Controller Grips", Type: "controller", Aliases: []string{"kiwi grip"}},

		// Everything else.
		{CanonicalName: "Carrying Case", Type: "other", Aliases: []string{"carrying case", "travel case", "hard case"}},
		{CanonicalName: "Cable Management Kit", Type: "other", Aliases: []string{"cable management", "pulley system"}},
		{CanonicalName: "Cooling Fan", Type: "other", Aliases: []string{"cooling fan", "fan"}},
		{CanonicalName: "Counterweight", Type: "other", Aliases: []string{"counterweight"}},
		{CanonicalName: "Power Adapter", Type: "other", Aliases: []string{"power adapter"}},
		{CanonicalName: "FreskDesk Stand", Type: "other", Aliases: []string{"freskdesk"}},
	}
}

// LoadCatalog reads an accessory catalog from a YAML file, or returns
// the built-in catalog when path is empty. Ambiguous aliases are a
// configuration error.
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return model.NewCatalog(DefaultCatalogEntries())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file struct {
		Accessories []model.CatalogEntry `yaml:"accessories"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	catalog, err := model.NewCatalog(file.Accessories)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}
