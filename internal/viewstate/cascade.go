package viewstate

import "fmt"

// Cascade is the strict three-level dependent-selection machine behind
// the category / subcategory / group selects. No level may ever hold a
// value inconsistent with its parent: changing a level clears everything
// below it, and a child select stays disabled until its option list has
// been loaded for the current parent.
type Cascade struct {
	categoria    string
	subcategoria string
	grupo        string

	subcategories []string
	groups        []string
}

func NewCascade() *Cascade {
	return &Cascade{}
}

// Categoria returns the selected category, "" when none.
func (c *Cascade) Categoria() string { return c.categoria }

// Subcategoria returns the selected subcategory, "" when none.
func (c *Cascade) Subcategoria() string { return c.subcategoria }

// Grupo returns the selected group, "" when none.
func (c *Cascade) Grupo() string { return c.grupo }

// SetCategoria selects a category and clears the levels below, even if
// they previously held values from a different category. The child lists
// empty until reloaded.
func (c *Cascade) SetCategoria(categoria string) {
	c.categoria = categoria
	c.subcategoria = ""
	c.grupo = ""
	c.subcategories = nil
	c.groups = nil
}

// LoadSubcategories installs the option list fetched for the current
// category, enabling the subcategory select.
func (c *Cascade) LoadSubcategories(subcategories []string) error {
	if c.categoria == "" {
		return fmt.Errorf("viewstate: subcategories require a category")
	}
	c.subcategories = subcategories
	return nil
}

// SetSubcategoria selects a subcategory out of the loaded list and
// clears the group level.
func (c *Cascade) SetSubcategoria(subcategoria string) error {
	if c.categoria == "" {
		return fmt.Errorf("viewstate: subcategory requires a category")
	}
	if subcategoria != "" && !contains(c.subcategories, subcategoria) {
		return fmt.Errorf("viewstate: subcategory %q not under category %q", subcategoria, c.categoria)
	}
	c.subcategoria = subcategoria
	c.grupo = ""
	c.groups = nil
	return nil
}

// LoadGroups installs the option list fetched for the current
// (category, subcategory) pair, enabling the group select.
func (c *Cascade) LoadGroups(groups []string) error {
	if c.subcategoria == "" {
		return fmt.Errorf("viewstate: groups require a subcategory")
	}
	c.groups = groups
	return nil
}

// SetGrupo selects a group out of the loaded list.
func (c *Cascade) SetGrupo(grupo string) error {
	if c.subcategoria == "" {
		return fmt.Errorf("viewstate: group requires a subcategory")
	}
	if grupo != "" && !contains(c.groups, grupo) {
		return fmt.Errorf("viewstate: group %q not under %q/%q", grupo, c.categoria, c.subcategoria)
	}
	c.grupo = grupo
	return nil
}

// SubcategoryEnabled reports whether the subcategory select is usable.
func (c *Cascade) SubcategoryEnabled() bool {
	return c.categoria != "" && c.subcategories != nil
}

// GroupEnabled reports whether the group select is usable.
func (c *Cascade) GroupEnabled() bool {
	return c.subcategoria != "" && c.groups != nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
