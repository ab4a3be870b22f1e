package content

import (
	"testing"

	"epb/common"
)

func addContentEntry(t *testing.T, r *Registry, path string, linear bool, ref ReferenceType) Entry {
	t.Helper()
	me, err := r.Add(path, []byte("<html/>"), common.MediaTypeXHTML, RoleContent)
	if err != nil {
		t.Fatalf("Add(%q): %v", path, err)
	}
	return Entry{Manifest: me, Title: path, Level: 1, Linear: linear, Ref: ref}
}

func TestAssembleEmptySpine(t *testing.T) {
	_, err := Assemble(NewRegistry(), nil, AssembleOptions{})
	if !common.IsKind(err, common.KindValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestAssembleCoverPageNeedsCover(t *testing.T) {
	r := NewRegistry()
	entries := []Entry{addContentEntry(t, r, "ch1.xhtml", true, RefNone)}
	_, err := Assemble(r, entries, AssembleOptions{CoverPage: true})
	if !common.IsKind(err, common.KindMissingCover) {
		t.Errorf("got %v, want missing cover error", err)
	}
}

func TestAssembleOrdering(t *testing.T) {
	r := NewRegistry()
	cover, err := r.Add("cover.png", nil, "image/png", RoleCover)
	if err != nil {
		t.Fatal(err)
	}
	e1 := addContentEntry(t, r, "ch1.xhtml", true, RefText)
	e2 := addContentEntry(t, r, "notes.xhtml", false, RefNotes)

	a, err := Assemble(r, []Entry{e1, e2}, AssembleOptions{CoverPage: true})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	// manifest: registration order, then the generated cover page
	wantPaths := []string{"cover.png", "ch1.xhtml", "notes.xhtml", "cover.xhtml"}
	if len(a.Manifest) != len(wantPaths) {
		t.Fatalf("manifest has %d items, want %d", len(a.Manifest), len(wantPaths))
	}
	for i, p := range wantPaths {
		if a.Manifest[i].Path != p {
			t.Errorf("manifest[%d] = %q, want %q", i, a.Manifest[i].Path, p)
		}
	}

	// spine: cover page first, then insertion order with linear flags
	if len(a.Spine) != 3 {
		t.Fatalf("spine has %d items, want 3", len(a.Spine))
	}
	if a.Spine[0].IDRef != IDCoverPage || !a.Spine[0].Linear {
		t.Errorf("spine[0] = %+v, want linear cover page", a.Spine[0])
	}
	if a.Spine[1].IDRef != e1.Manifest.ID || !a.Spine[1].Linear {
		t.Errorf("spine[1] = %+v", a.Spine[1])
	}
	if a.Spine[2].IDRef != e2.Manifest.ID || a.Spine[2].Linear {
		t.Errorf("spine[2] = %+v, want non-linear", a.Spine[2])
	}

	if a.CoverID != cover.ID {
		t.Errorf("CoverID = %q, want %q", a.CoverID, cover.ID)
	}
	if !a.CoverPage {
		t.Error("CoverPage flag not set")
	}

	// references: cover page first, then tagged entries in order
	wantRefs := []ReferenceType{RefCover, RefText, RefNotes}
	if len(a.References) != len(wantRefs) {
		t.Fatalf("references = %d, want %d", len(a.References), len(wantRefs))
	}
	for i, ref := range wantRefs {
		if a.References[i].Ref != ref {
			t.Errorf("references[%d] = %v, want %v", i, a.References[i].Ref, ref)
		}
	}
}

func TestAssembleSyntheticManifestEntry(t *testing.T) {
	r := NewRegistry()
	e1 := addContentEntry(t, r, "ch1.xhtml", true, RefNone)
	tocEntry := Entry{
		Manifest: ManifestEntry{ID: IDInlineToc, Path: "toc.xhtml", MediaType: common.MediaTypeXHTML},
		Title:    "Contents",
		Level:    1,
		Linear:   true,
		Ref:      RefToc,
	}

	a, err := Assemble(r, []Entry{e1, tocEntry}, AssembleOptions{})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	found := false
	for _, me := range a.Manifest {
		if me.ID == IDInlineToc && me.Path == "toc.xhtml" {
			found = true
		}
	}
	if !found {
		t.Error("synthetic entry missing from manifest")
	}
	if len(a.Spine) != 2 || a.Spine[1].IDRef != IDInlineToc {
		t.Errorf("spine = %+v", a.Spine)
	}
}

func TestAssembleExtraEntries(t *testing.T) {
	r := NewRegistry()
	e1 := addContentEntry(t, r, "ch1.xhtml", true, RefNone)
	extra := ManifestEntry{ID: IDStylesheet, Path: RelStylesheet, MediaType: common.MediaTypeCSS}

	a, err := Assemble(r, []Entry{e1}, AssembleOptions{Extra: []ManifestEntry{extra}})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	last := a.Manifest[len(a.Manifest)-1]
	if last.ID != IDStylesheet || last.Path != RelStylesheet {
		t.Errorf("extra entry not appended to the manifest: %+v", last)
	}
	// extra artifacts never join the spine
	if len(a.Spine) != 1 {
		t.Errorf("spine = %+v", a.Spine)
	}
}

func TestReferenceVocabulary(t *testing.T) {
	cases := []struct {
		ref      ReferenceType
		guide    string
		landmark string
	}{
		{RefText, "text", "bodymatter"},
		{RefNotes, "notes", "endnotes"},
		{RefCopyright, "copyright", "copyright-page"},
		{RefTitlePage, "title-page", "titlepage"},
		{RefCover, "cover", "cover"},
		{RefToc, "toc", "toc"},
		{RefNone, "", ""},
	}
	for _, tc := range cases {
		if got := tc.ref.GuideType(); got != tc.guide {
			t.Errorf("%v.GuideType() = %q, want %q", tc.ref, got, tc.guide)
		}
		if got := tc.ref.LandmarkType(); got != tc.landmark {
			t.Errorf("%v.LandmarkType() = %q, want %q", tc.ref, got, tc.landmark)
		}
	}
}
