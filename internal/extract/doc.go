// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns one chain section of a vendor report into typed
// records: the formatted sequence, calculated mass, peptide and isotope
// tables, the cropped coverage image, and the typical peptide map.
//
// Every failure is a terminal *types.Error; nothing here substitutes
// defaults for missing content.
package extract
