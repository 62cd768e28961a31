package services

import (
	"testing"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/types"
)

func TestCreateCompleteRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	created := env.mustCreate(t, &types.Material{
		Name: "Pre-flight checklist",
		Type: types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{
			{Text: "Inspect harness", DisplayOrder: 0},
			{Text: "Verify anchor points", DisplayOrder: 1},
		},
	})
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := env.materials.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get material: %v", err)
	}
	if got.Type != types.MaterialTypeChecklist {
		t.Fatalf("expected checklist, got %q", got.Type)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}
	if got.Entries[0].Text != "Inspect harness" {
		t.Fatalf("entries out of order: %q first", got.Entries[0].Text)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not stamped")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.materials.GetByID(testCtx(t), 9999)
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestGetOfTypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	created := env.mustCreate(t, &types.Material{Name: "Intro video", Type: types.MaterialTypeVideo})

	_, err := env.materials.GetOfType(ctx, created.ID, types.MaterialTypeQuiz)
	if !apierr.IsTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
	if _, err := env.materials.GetOfType(ctx, created.ID, types.MaterialTypeVideo); err != nil {
		t.Fatalf("matching type lookup failed: %v", err)
	}
}

func TestCreateRejectsInvalidType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.materials.CreateComplete(testCtx(t), &types.Material{Name: "x", Type: "hologram"})
	if !apierr.IsValidation(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestUpdateReplacesSubcomponents(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	created := env.mustCreate(t, &types.Material{
		Name: "Assembly workflow",
		Type: types.MaterialTypeWorkflow,
		Steps: []types.WorkflowStep{
			{Title: "Mount frame", DisplayOrder: 0},
			{Title: "Attach panel", DisplayOrder: 1},
			{Title: "Torque bolts", DisplayOrder: 2},
		},
	})

	updated, err := env.materials.Update(ctx, &types.Material{
		ID:   created.ID,
		Name: "Assembly workflow v2",
		Type: types.MaterialTypeWorkflow,
		Steps: []types.WorkflowStep{
			{Title: "Mount frame", DisplayOrder: 0},
			{Title: "Seal edges", DisplayOrder: 1},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update changed the id: %d -> %d", created.ID, updated.ID)
	}

	got, err := env.materials.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "Assembly workflow v2" {
		t.Fatalf("name not replaced: %q", got.Name)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("expected 2 steps after replacement, got %d", len(got.Steps))
	}
	if got.Steps[1].Title != "Seal edges" {
		t.Fatalf("stale step content: %q", got.Steps[1].Title)
	}
}

func TestUpdatePurgesReplacedComponentEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	target := env.mustCreate(t, &types.Material{Name: "Torque chart", Type: types.MaterialTypeDefault})
	checklist := env.mustCreate(t, &types.Material{
		Name: "Pre-flight",
		Type: types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{
			{Text: "Check seals", DisplayOrder: 0},
		},
	})
	oldEntryID := checklist.Entries[0].ID

	if _, err := env.relationships.AssignToChecklistEntry(ctx, oldEntryID, target.ID, types.RelationshipAssigned, nil); err != nil {
		t.Fatalf("assign to entry: %v", err)
	}

	if _, err := env.materials.Update(ctx, &types.Material{
		ID:   checklist.ID,
		Name: "Pre-flight",
		Type: types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{
			{Text: "Check seals and fasteners", DisplayOrder: 0},
		},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	linked, err := env.relationships.GetChecklistEntryMaterials(ctx, oldEntryID)
	if err != nil {
		t.Fatalf("get entry materials: %v", err)
	}
	if len(linked) != 0 {
		t.Fatalf("edges for replaced entry survived the update: %+v", linked)
	}
}

func TestUpdateCarriesForwardImmutableState(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	created := env.mustCreate(t, &types.Material{
		Name:     "Wiring diagram",
		Type:     types.MaterialTypePDF,
		UniqueID: strPtr("ext-042"),
	})
	if ok, err := env.materials.AssignAsset(ctx, created.ID, 7); err != nil || !ok {
		t.Fatalf("assign asset: ok=%v err=%v", ok, err)
	}

	updated, err := env.materials.Update(ctx, &types.Material{
		ID:   created.ID,
		Name: "Wiring diagram rev B",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.UniqueID == nil || *updated.UniqueID != "ext-042" {
		t.Fatalf("unique id not carried forward: %v", updated.UniqueID)
	}
	if updated.AssetID == nil || *updated.AssetID != 7 {
		t.Fatalf("asset id not carried forward: %v", updated.AssetID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestUpdateRejectsVariantChange(t *testing.T) {
	env := newTestEnv(t)

	created := env.mustCreate(t, &types.Material{Name: "Site photo", Type: types.MaterialTypeImage})

	_, err := env.materials.Update(testCtx(t), &types.Material{
		ID:   created.ID,
		Name: "Site photo",
		Type: types.MaterialTypeVideo,
	})
	if !apierr.IsTypeMismatch(err) {
		t.Fatalf("expected type_mismatch, got %v", err)
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	created := env.mustCreate(t, &types.Material{
		Name:    "Safety checklist",
		Type:    types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{{Text: "Wear gloves"}},
	})

	payload := func() *types.Material {
		return &types.Material{
			ID:      created.ID,
			Name:    "Safety checklist",
			Entries: []types.ChecklistEntry{{Text: "Wear gloves"}},
		}
	}
	if _, err := env.materials.Update(ctx, payload()); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if _, err := env.materials.Update(ctx, payload()); err != nil {
		t.Fatalf("second update: %v", err)
	}

	got, err := env.materials.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("expected 1 entry after repeated updates, got %d", len(got.Entries))
	}
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	parent := env.mustCreate(t, &types.Material{Name: "Course root", Type: types.MaterialTypeDefault})
	child := env.mustCreate(t, &types.Material{
		Name:    "Checklist child",
		Type:    types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{{Text: "Step one"}},
	})
	if _, err := env.relationships.Assign(ctx, parent.ID, child.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := env.materials.Delete(ctx, child.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := env.materials.GetByID(ctx, child.ID); !apierr.IsNotFound(err) {
		t.Fatalf("expected child gone, got %v", err)
	}
	refs, err := env.relationships.GetChildren(ctx, parent.ID, "")
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected dangling edges removed, found %d", len(refs))
	}

	var entryCount int64
	if err := env.db.Model(&types.ChecklistEntry{}).Where("material_id = ?", child.ID).Count(&entryCount).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if entryCount != 0 {
		t.Fatalf("expected subcomponents removed, found %d", entryCount)
	}
}

func TestDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	if err := env.materials.Delete(testCtx(t), 12345); !apierr.IsNotFound(err) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestAssetAssignmentNonCapableIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	quiz := env.mustCreate(t, &types.Material{
		Name: "Knowledge check",
		Type: types.MaterialTypeQuiz,
		Questions: []types.QuizQuestion{
			booleanQuestion("Is the sky blue?", 1, true),
		},
	})

	ok, err := env.materials.AssignAsset(ctx, quiz.ID, 3)
	if err != nil {
		t.Fatalf("assign asset: %v", err)
	}
	if ok {
		t.Fatalf("quiz material must not accept an asset")
	}

	assetID, err := env.materials.GetAssetID(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("get asset id: %v", err)
	}
	if assetID != nil {
		t.Fatalf("expected nil asset id, got %d", *assetID)
	}
}

func TestAssetAssignAndRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	video := env.mustCreate(t, &types.Material{Name: "Demo recording", Type: types.MaterialTypeVideo})

	if ok, err := env.materials.AssignAsset(ctx, video.ID, 11); err != nil || !ok {
		t.Fatalf("assign: ok=%v err=%v", ok, err)
	}
	assetID, err := env.materials.GetAssetID(ctx, video.ID)
	if err != nil {
		t.Fatalf("get asset id: %v", err)
	}
	if assetID == nil || *assetID != 11 {
		t.Fatalf("asset id not stored: %v", assetID)
	}

	if ok, err := env.materials.RemoveAsset(ctx, video.ID); err != nil || !ok {
		t.Fatalf("remove: ok=%v err=%v", ok, err)
	}
	assetID, err = env.materials.GetAssetID(ctx, video.ID)
	if err != nil {
		t.Fatalf("get asset id: %v", err)
	}
	if assetID != nil {
		t.Fatalf("asset id not cleared: %v", *assetID)
	}
}

func TestCreateCompleteSyncsRelatedEdges(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	child := env.mustCreate(t, &types.Material{Name: "Leaf", Type: types.MaterialTypeDefault})
	parent := env.mustCreate(t, &types.Material{
		Name:    "Bundle",
		Type:    types.MaterialTypeDefault,
		Related: []types.RelatedRef{{ID: child.ID}},
	})

	if len(parent.Related) != 1 || parent.Related[0].ID != child.ID {
		t.Fatalf("related not attached on create: %+v", parent.Related)
	}
	if parent.Related[0].Name != "Leaf" {
		t.Fatalf("related ref not decorated with name: %+v", parent.Related[0])
	}

	children, err := env.relationships.GetChildren(ctx, parent.ID, types.RelationshipContains)
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(children) != 1 || children[0].ID != child.ID {
		t.Fatalf("related edge not persisted in graph: %+v", children)
	}
}
