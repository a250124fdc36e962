package models

// SeedAccounts returns the accounts present at startup.
func SeedAccounts() []Account {
	return []Account{
		{ID: 1, Username: "admin", Password: "admin", Role: "admin"},
		{ID: 2, Username: "supp", Password: "supp", Role: "supplier"},
		{ID: 3, Username: "manu", Password: "manu", Role: "manufacturer"},
		{ID: 4, Username: "retailer", Password: "retailer", Role: "retailer"},
	}
}

// SeedProfiles returns the profiles present at startup.
func SeedProfiles() []Profile {
	return []Profile{
		{ID: 1, Username: "admin", Name: "Admin User", Description: "System Administrator", Website: "admin.com", Location: "Admin City", Image: "admin.jpeg", Role: "admin"},
		{ID: 2, Username: "supp", Name: "Supplier User", Description: "Product Supplier", Website: "supplier.com", Location: "Supplier City", Image: "supp.jpeg", Role: "supplier"},
		{ID: 3, Username: "manu", Name: "Manufacturer User", Description: "Product Manufacturer", Website: "manufacturer.com", Location: "Manufacturer City", Image: "manu.jpeg", Role: "manufacturer"},
		{ID: 4, Username: "retailer", Name: "Retailer User", Description: "Product Retailer", Website: "retailer.com", Location: "Retailer City", Image: "retailer.jpeg", Role: "retailer"},
	}
}

// SeedProducts returns the products present at startup.
func SeedProducts() []Product {
	return []Product{
		{ID: 1, SerialNumber: "CH001", Name: "Chanel Classic Handbag", Brand: "Chanel", Image: "Chanel_ClassicHandbag_Black.png"},
		{ID: 2, SerialNumber: "CH002", Name: "Chanel Flap Bag", Brand: "Chanel", Image: "Chanel_FlapBag_Black.png"},
		{ID: 3, SerialNumber: "CH003", Name: "Chanel Mini Flapbag", Brand: "Chanel", Image: "Chanel_MiniFlapbag_TopHandle.png"},
		{ID: 4, SerialNumber: "CH004", Name: "Chanel Small Flap Bag", Brand: "Chanel", Image: "Chanel_SmallFlapBag_White.png"},
	}
}
