package catalog

// DefaultCategories returns the minimal category structure served when
// no category document can be resolved for a data source. It keeps the
// service usable for clients that only need the top-level taxonomy.
func DefaultCategories() Categories {
	var c Categories
	c.Set("demographic", []string{"age", "gender", "race", "education"})
	c.Set("social", []string{"social_var1", "social_var2"})
	c.Set("economic", []string{"income", "employment"})
	c.Set("wellbeing", []string{"wellbeing_var1", "wellbeing_var2"})
	return c
}
