package services

import (
	"testing"

	"github.com/xr50/training-asset-repository/internal/apierr"
	"github.com/xr50/training-asset-repository/internal/types"
)

func createDefault(t *testing.T, env *testEnv, name string) *types.Material {
	t.Helper()
	return env.mustCreate(t, &types.Material{Name: name, Type: types.MaterialTypeDefault})
}

func TestAssignAndGetChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	parent := createDefault(t, env, "parent")
	a := createDefault(t, env, "child a")
	b := createDefault(t, env, "child b")

	if _, err := env.relationships.Assign(ctx, parent.ID, a.ID, types.RelationshipContains, intPtr(1)); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, parent.ID, b.ID, types.RelationshipContains, intPtr(0)); err != nil {
		t.Fatalf("assign b: %v", err)
	}

	refs, err := env.relationships.GetChildren(ctx, parent.ID, types.RelationshipContains)
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 children, got %d", len(refs))
	}
	if refs[0].ID != b.ID || refs[1].ID != a.ID {
		t.Fatalf("children not ordered by display_order: %+v", refs)
	}
	if refs[0].Name != "child b" {
		t.Fatalf("child ref missing name: %+v", refs[0])
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	parent := createDefault(t, env, "parent")
	child := createDefault(t, env, "child")

	if _, err := env.relationships.Assign(ctx, parent.ID, child.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, parent.ID, child.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("repeated assign must succeed: %v", err)
	}

	refs, err := env.relationships.GetChildren(ctx, parent.ID, "")
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected a single edge, got %d", len(refs))
	}
}

func TestAssignRejectsDirectCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	a := createDefault(t, env, "a")
	b := createDefault(t, env, "b")

	if _, err := env.relationships.Assign(ctx, a.ID, b.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign a->b: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, b.ID, a.ID, types.RelationshipContains, nil); err == nil {
		t.Fatalf("expected cycle rejection on b->a")
	}
}

func TestAssignRejectsTransitiveCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	a := createDefault(t, env, "a")
	b := createDefault(t, env, "b")
	c := createDefault(t, env, "c")

	if _, err := env.relationships.Assign(ctx, a.ID, b.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign a->b: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, b.ID, c.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign b->c: %v", err)
	}

	cycle, err := env.relationships.WouldCreateCycle(ctx, c.ID, a.ID)
	if err != nil {
		t.Fatalf("cycle check: %v", err)
	}
	if !cycle {
		t.Fatalf("c->a must be detected as a cycle")
	}
	if _, err := env.relationships.Assign(ctx, c.ID, a.ID, types.RelationshipContains, nil); err == nil {
		t.Fatalf("expected transitive cycle rejection")
	}

	// The reverse of a safe edge is fine once no path exists.
	cycle, err = env.relationships.WouldCreateCycle(ctx, a.ID, c.ID)
	if err != nil {
		t.Fatalf("cycle check: %v", err)
	}
	if cycle {
		t.Fatalf("a->c must not be reported as a cycle")
	}
}

func TestSelfReferenceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	a := createDefault(t, env, "a")
	if _, err := env.relationships.Assign(ctx, a.ID, a.ID, types.RelationshipContains, nil); err == nil {
		t.Fatalf("expected self-containment rejection")
	}
}

func TestReorderIgnoresForeignIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	parent := createDefault(t, env, "parent")
	other := createDefault(t, env, "other parent")
	a := createDefault(t, env, "a")
	b := createDefault(t, env, "b")
	foreign := createDefault(t, env, "foreign child")

	if _, err := env.relationships.Assign(ctx, parent.ID, a.ID, types.RelationshipContains, intPtr(0)); err != nil {
		t.Fatalf("assign a: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, parent.ID, b.ID, types.RelationshipContains, intPtr(1)); err != nil {
		t.Fatalf("assign b: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, other.ID, foreign.ID, types.RelationshipContains, intPtr(0)); err != nil {
		t.Fatalf("assign foreign: %v", err)
	}

	err := env.relationships.Reorder(ctx, parent.ID, map[uint]int{
		a.ID:       1,
		b.ID:       0,
		foreign.ID: 5,
	})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}

	refs, err := env.relationships.GetChildren(ctx, parent.ID, types.RelationshipContains)
	if err != nil {
		t.Fatalf("get children: %v", err)
	}
	if refs[0].ID != b.ID || refs[1].ID != a.ID {
		t.Fatalf("reorder not applied: %+v", refs)
	}

	otherRefs, err := env.relationships.GetChildren(ctx, other.ID, types.RelationshipContains)
	if err != nil {
		t.Fatalf("get other children: %v", err)
	}
	if otherRefs[0].DisplayOrder == nil || *otherRefs[0].DisplayOrder != 0 {
		t.Fatalf("foreign edge must be untouched: %+v", otherRefs[0])
	}
}

func TestGetHierarchy(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	root := createDefault(t, env, "root")
	mid := createDefault(t, env, "mid")
	leaf := createDefault(t, env, "leaf")

	if _, err := env.relationships.Assign(ctx, root.ID, mid.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign root->mid: %v", err)
	}
	if _, err := env.relationships.Assign(ctx, mid.ID, leaf.ID, types.RelationshipContains, nil); err != nil {
		t.Fatalf("assign mid->leaf: %v", err)
	}

	tree, err := env.relationships.GetHierarchy(ctx, root.ID, 0)
	if err != nil {
		t.Fatalf("hierarchy: %v", err)
	}
	if tree.MaterialID != root.ID || len(tree.Children) != 1 {
		t.Fatalf("unexpected root node: %+v", tree)
	}
	if tree.Children[0].MaterialID != mid.ID || len(tree.Children[0].Children) != 1 {
		t.Fatalf("unexpected mid node: %+v", tree.Children[0])
	}
	if tree.Children[0].Children[0].MaterialID != leaf.ID {
		t.Fatalf("unexpected leaf node: %+v", tree.Children[0].Children[0])
	}

	// Depth 2 covers the root and its direct children only.
	shallow, err := env.relationships.GetHierarchy(ctx, root.ID, 2)
	if err != nil {
		t.Fatalf("shallow hierarchy: %v", err)
	}
	if len(shallow.Children) != 1 || len(shallow.Children[0].Children) != 0 {
		t.Fatalf("depth limit not honored: %+v", shallow)
	}
}

func TestDependencies(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	course := createDefault(t, env, "advanced course")
	basics := createDefault(t, env, "basics")

	if err := env.relationships.CreateDependency(ctx, course.ID, basics.ID); err != nil {
		t.Fatalf("create dependency: %v", err)
	}
	if err := env.relationships.CreateDependency(ctx, course.ID, course.ID); !apierr.IsTypeMismatch(err) {
		t.Fatalf("expected self-dependency rejection, got %v", err)
	}

	deps, err := env.relationships.GetDependencies(ctx, course.ID)
	if err != nil {
		t.Fatalf("get dependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].ID != basics.ID {
		t.Fatalf("unexpected dependencies: %+v", deps)
	}

	if err := env.relationships.RemoveDependency(ctx, course.ID, basics.ID); err != nil {
		t.Fatalf("remove dependency: %v", err)
	}
	deps, err = env.relationships.GetDependencies(ctx, course.ID)
	if err != nil {
		t.Fatalf("get dependencies: %v", err)
	}
	if len(deps) != 0 {
		t.Fatalf("dependency not removed: %+v", deps)
	}
}

func TestContainerAssignment(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	m := createDefault(t, env, "lesson")
	program := &types.TrainingProgram{Name: "Onboarding"}
	if _, err := env.programRepo.Create(ctx, nil, program); err != nil {
		t.Fatalf("create program: %v", err)
	}
	path := &types.LearningPath{Name: "Week one", ProgramID: &program.ID}
	if _, err := env.pathRepo.Create(ctx, nil, path); err != nil {
		t.Fatalf("create path: %v", err)
	}

	if err := env.relationships.AssignToTrainingProgram(ctx, m.ID, program.ID, "", nil); err != nil {
		t.Fatalf("assign to program: %v", err)
	}
	// Idempotent re-assignment.
	if err := env.relationships.AssignToTrainingProgram(ctx, m.ID, program.ID, "", nil); err != nil {
		t.Fatalf("repeated program assignment: %v", err)
	}
	if err := env.relationships.AssignToLearningPath(ctx, m.ID, path.ID, "", nil); err != nil {
		t.Fatalf("assign to path: %v", err)
	}

	ids, err := env.relationships.GetTrainingProgramMaterialIDs(ctx, program.ID)
	if err != nil {
		t.Fatalf("program materials: %v", err)
	}
	if len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("unexpected program materials: %v", ids)
	}
	ids, err = env.relationships.GetLearningPathMaterialIDs(ctx, path.ID)
	if err != nil {
		t.Fatalf("path materials: %v", err)
	}
	if len(ids) != 1 || ids[0] != m.ID {
		t.Fatalf("unexpected path materials: %v", ids)
	}

	if err := env.relationships.AssignToTrainingProgram(ctx, m.ID, 888, "", nil); !apierr.IsNotFound(err) {
		t.Fatalf("expected not_found for missing program, got %v", err)
	}
}

func TestComponentAssignmentDuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := testCtx(t)

	checklist := env.mustCreate(t, &types.Material{
		Name:    "Inspection",
		Type:    types.MaterialTypeChecklist,
		Entries: []types.ChecklistEntry{{Text: "Check seals"}},
	})
	detail := createDefault(t, env, "seal detail")

	loaded, err := env.materials.GetByID(ctx, checklist.ID)
	if err != nil {
		t.Fatalf("load checklist: %v", err)
	}
	entryID := loaded.Entries[0].ID

	if _, err := env.relationships.AssignToComponent(ctx, entryID, types.ComponentTypeChecklistEntry, detail.ID, "", nil); err != nil {
		t.Fatalf("assign to component: %v", err)
	}
	if _, err := env.relationships.AssignToComponent(ctx, entryID, types.ComponentTypeChecklistEntry, detail.ID, "", nil); !apierr.IsConflict(err) {
		t.Fatalf("expected conflict on duplicate component edge, got %v", err)
	}

	refs, err := env.relationships.GetComponentMaterials(ctx, entryID, types.ComponentTypeChecklistEntry)
	if err != nil {
		t.Fatalf("component materials: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != detail.ID {
		t.Fatalf("unexpected component materials: %+v", refs)
	}

	if _, err := env.relationships.AssignToComponent(ctx, entryID, "gizmo", detail.ID, "", nil); !apierr.IsValidation(err) {
		t.Fatalf("expected validation failure for bad component type, got %v", err)
	}
}
