package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/pkg/enums"
)

func seedTime(day int) time.Time {
	return time.Date(2024, time.January, day, 9, 0, 0, 0, time.UTC)
}

// SeedSuppliers is the static supplier directory backing the mocked catalog.
func SeedSuppliers() []Supplier {
	return []Supplier{
		{ID: "sup1", CompanyName: "Gulf Electronics Trading", CompanyNameAr: "الخليج لتجارة الإلكترونيات", Category: "electronics", Location: "Riyadh", Verified: true, Rating: 4.8, TotalReviews: 124},
		{ID: "sup2", CompanyName: "Al Noor Textiles", CompanyNameAr: "النور للمنسوجات", Category: "textiles", Location: "Jeddah", Verified: true, Rating: 4.5, TotalReviews: 89},
		{ID: "sup3", CompanyName: "Desert Food Supplies", CompanyNameAr: "الصحراء للمواد الغذائية", Category: "food", Location: "Dammam", Verified: false, Rating: 4.1, TotalReviews: 37},
		{ID: "sup4", CompanyName: "Arabian Machinery Co.", CompanyNameAr: "الشركة العربية للمعدات", Category: "machinery", Location: "Riyadh", Verified: true, Rating: 4.6, TotalReviews: 58},
		{ID: "sup5", CompanyName: "Red Sea Furniture", CompanyNameAr: "البحر الأحمر للأثاث", Category: "furniture", Location: "Jeddah", Verified: false, Rating: 3.9, TotalReviews: 21},
		{ID: "sup6", CompanyName: "Oasis Medical Supplies", CompanyNameAr: "الواحة للمستلزمات الطبية", Category: "medical", Location: "Khobar", Verified: true, Rating: 4.9, TotalReviews: 203},
	}
}

// SeedProducts returns the static catalog with supplier summaries attached.
func SeedProducts() []Product {
	suppliers := make(map[string]Supplier)
	for _, s := range SeedSuppliers() {
		suppliers[s.ID] = s
	}

	products := []Product{
		{
			ID: "1", SupplierID: "sup1",
			Name: "Wireless Bluetooth Headphones", NameAr: "سماعات بلوتوث لاسلكية",
			Description: "Premium wireless headphones with active noise cancellation", DescriptionAr: "سماعات لاسلكية فاخرة مع خاصية إلغاء الضوضاء",
			Category: "electronics", Subcategory: "audio",
			Price: decimal.NewFromInt(450), MinOrderQuantity: 10, Unit: "piece",
			Tags: []string{"wireless", "bluetooth", "audio"}, Featured: true,
			CreatedAt: seedTime(5),
		},
		{
			ID: "2", SupplierID: "sup2",
			Name: "Cotton T-Shirts Bulk Pack", NameAr: "عبوة قمصان قطنية بالجملة",
			Description: "100% cotton t-shirts in assorted sizes and colors", DescriptionAr: "قمصان قطن ١٠٠٪ بمقاسات وألوان متنوعة",
			Category: "textiles", Subcategory: "apparel",
			Price: decimal.NewFromInt(25), MinOrderQuantity: 100, Unit: "piece",
			Tags:      []string{"cotton", "apparel", "bulk"},
			CreatedAt: seedTime(12),
		},
		{
			ID: "3", SupplierID: "sup3",
			Name: "Premium Arabic Coffee", NameAr: "قهوة عربية فاخرة",
			Description: "Lightly roasted Arabic coffee beans with cardamom", DescriptionAr: "حبوب قهوة عربية محمصة تحميصاً خفيفاً مع الهيل",
			Category: "food", Subcategory: "beverages",
			Price: decimal.NewFromInt(120), MinOrderQuantity: 20, Unit: "kg",
			Tags: []string{"coffee", "arabic", "cardamom"}, Featured: true,
			CreatedAt: seedTime(20),
		},
		{
			ID: "4", SupplierID: "sup4",
			Name: "Industrial Water Pump", NameAr: "مضخة مياه صناعية",
			Description: "High capacity centrifugal pump for industrial use", DescriptionAr: "مضخة طرد مركزي عالية السعة للاستخدام الصناعي",
			Category: "machinery", Subcategory: "pumps",
			Price: decimal.NewFromInt(2800), MinOrderQuantity: 1, Unit: "unit",
			Tags:      []string{"pump", "industrial", "water"},
			CreatedAt: seedTime(2),
		},
		{
			ID: "5", SupplierID: "sup5",
			Name: "Office Chair Ergonomic", NameAr: "كرسي مكتب مريح",
			Description: "Ergonomic office chair with lumbar support", DescriptionAr: "كرسي مكتب مريح مع دعم لأسفل الظهر",
			Category: "furniture", Subcategory: "office",
			Price: decimal.NewFromInt(850), MinOrderQuantity: 5, Unit: "piece",
			Tags:      []string{"office", "chair", "ergonomic"},
			CreatedAt: seedTime(28),
		},
		{
			ID: "6", SupplierID: "sup6",
			Name: "Medical Examination Gloves", NameAr: "قفازات فحص طبية",
			Description: "Powder-free nitrile gloves, box of 100", DescriptionAr: "قفازات نتريل خالية من البودرة، علبة ١٠٠ قطعة",
			Category: "medical", Subcategory: "consumables",
			Price: decimal.NewFromInt(1200), MinOrderQuantity: 10, Unit: "carton",
			Tags: []string{"gloves", "nitrile", "medical"}, Featured: true,
			CreatedAt: seedTime(15),
		},
	}

	for i := range products {
		p := &products[i]
		p.Currency = enums.CurrencySAR
		p.AvailabilityStatus = enums.AvailabilityAvailable
		p.UpdatedAt = p.CreatedAt
		p.Images = []string{"/images/products/" + p.ID + ".jpg"}
		if s, ok := suppliers[p.SupplierID]; ok {
			p.Supplier = &s
		}
	}
	return products
}
