package viewstate

import "testing"

func loadedCascade(t *testing.T) *Cascade {
	t.Helper()
	c := NewCascade()
	c.SetCategoria("Telefonía")
	if err := c.LoadSubcategories([]string{"Móvil", "Fijo"}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSubcategoria("Móvil"); err != nil {
		t.Fatal(err)
	}
	if err := c.LoadGroups([]string{"Smartphone", "Feature"}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetGrupo("Smartphone"); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCascadeCategoryChangeClearsChildren(t *testing.T) {
	c := loadedCascade(t)

	c.SetCategoria("Redes")
	if c.Subcategoria() != "" || c.Grupo() != "" {
		t.Fatalf("category change must clear children, got sub=%q grupo=%q",
			c.Subcategoria(), c.Grupo())
	}
	if c.SubcategoryEnabled() || c.GroupEnabled() {
		t.Fatal("child selects must disable until their lists reload")
	}
}

func TestCascadeSubcategoryChangeClearsGroup(t *testing.T) {
	c := loadedCascade(t)

	if err := c.SetSubcategoria("Fijo"); err != nil {
		t.Fatal(err)
	}
	if c.Grupo() != "" {
		t.Fatalf("subcategory change must clear the group, got %q", c.Grupo())
	}
	if c.GroupEnabled() {
		t.Fatal("group select must disable until its list reloads")
	}
}

func TestCascadeChildRequiresParent(t *testing.T) {
	c := NewCascade()
	if err := c.SetSubcategoria("Móvil"); err == nil {
		t.Fatal("subcategory without a category must fail")
	}
	if err := c.LoadGroups([]string{"x"}); err == nil {
		t.Fatal("groups without a subcategory must fail")
	}
	if err := c.SetGrupo("x"); err == nil {
		t.Fatal("group without a subcategory must fail")
	}
}

func TestCascadeRejectsValuesOutsideLoadedList(t *testing.T) {
	c := NewCascade()
	c.SetCategoria("Telefonía")
	if err := c.LoadSubcategories([]string{"Móvil"}); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSubcategoria("Satélite"); err == nil {
		t.Fatal("a subcategory outside the loaded list must be rejected")
	}
}

func TestCascadeEmptySelectionIsAllowed(t *testing.T) {
	c := loadedCascade(t)
	if err := c.SetSubcategoria(""); err != nil {
		t.Fatalf("clearing the subcategory must be allowed: %v", err)
	}
	if c.Grupo() != "" {
		t.Fatal("clearing the subcategory must clear the group")
	}
}
