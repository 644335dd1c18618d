package dashboard

var seedContracts = []Contract{
	{ID: "C001", Title: "Pengembangan Website E-commerce", Parties: "PT. Digital Maju & John Doe", Date: "2024-07-15", Status: StatusActive},
	{ID: "C002", Title: "Penyediaan Bahan Baku Kopi", Parties: "Kopi Kenangan & CV. Biji Terbaik", Date: "2024-06-01", Status: StatusActive},
	{ID: "C003", Title: "Sewa Mesin Fotokopi Kantor", Parties: "Creative Agency & PT. Sewa Guna", Date: "2023-12-20", Status: StatusExpired},
	{ID: "C004", Title: "Jasa Desain Logo & Branding", Parties: "UMKM Sejahtera & Jane Smith", Date: "2024-08-01", Status: StatusActive},
}

// Seeds returns the static contracts every tenant sees on the dashboard.
func Seeds() []Contract {
	return append([]Contract(nil), seedContracts...)
}
