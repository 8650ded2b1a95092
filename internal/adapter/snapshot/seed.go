package snapshot

// seedDataset builds the provisioning dataset for a fresh store: the
// waitstaff codes, the house menu and ten free tables. It mirrors
// migrations/002_seed.sql for the postgres backend.
func seedDataset() dataset {
	d := dataset{
		Employees: []employeeRecord{
			{ID: 1, Name: "Admin", Code: "1234"},
			{ID: 2, Name: "Maria", Code: "2222"},
			{ID: 3, Name: "Carlos", Code: "3333"},
		},
		MenuItems: []menuItemRecord{
			{ID: 1, Name: "Cocacola", Price: 2.5, Category: "drink"},
			{ID: 2, Name: "Nestea", Price: 2.5, Category: "drink"},
			{ID: 3, Name: "Water", Price: 1.5, Category: "drink"},
			{ID: 4, Name: "Orange juice", Price: 2.8, Category: "drink"},
			{ID: 5, Name: "Coffee with milk", Price: 1.8, Category: "drink"},
			{ID: 6, Name: "Beer", Price: 2.0, Category: "alcohol"},
			{ID: 7, Name: "Red wine", Price: 2.5, Category: "alcohol"},
			{ID: 8, Name: "Gin tonic", Price: 7.0, Category: "alcohol"},
			{ID: 9, Name: "Calamari sandwich", Price: 4.5, Category: "food"},
			{ID: 10, Name: "Ham sandwich", Price: 4.0, Category: "food"},
			{ID: 11, Name: "Mixed toast", Price: 3.5, Category: "food"},
			{ID: 12, Name: "Tortilla skewer", Price: 2.5, Category: "food"},
			{ID: 13, Name: "Mixed salad", Price: 6.0, Category: "food"},
			{ID: 14, Name: "Dish of the day", Price: 9.5, Category: "food"},
			{ID: 15, Name: "Bread", Price: 0.5, Category: "misc"},
			{ID: 16, Name: "Cutlery", Price: 1.0, Category: "misc"},
		},
	}
	for n := 1; n <= 10; n++ {
		d.Tables = append(d.Tables, tableRecord{ID: n, Number: n, State: "free"})
	}
	return d
}
