// Package menu holds the static item catalog. It is compiled in, loaded
// once and immutable at runtime.
package menu

import "class-order/models"

var items = []models.MenuItem{
	// 超值全餐
	{ID: "m1", Name: "大麥克", Price: 78, Category: models.CategoryMain},
	{ID: "m2", Name: "雙層牛肉吉事堡", Price: 72, Category: models.CategoryMain},
	{ID: "m3", Name: "嫩煎雞腿堡", Price: 83, Category: models.CategoryMain},
	{ID: "m4", Name: "麥香雞", Price: 48, Category: models.CategoryMain},
	{ID: "m5", Name: "麥克雞塊(6塊)", Price: 68, Category: models.CategoryMain},
	{ID: "m6", Name: "麥克雞塊(10塊)", Price: 109, Category: models.CategoryMain},
	{ID: "m7", Name: "勁辣雞腿堡", Price: 78, Category: models.CategoryMain},
	{ID: "m8", Name: "麥脆雞腿(2塊)", Price: 126, Category: models.CategoryMain},
	{ID: "m9", Name: "雙層麥香雞", Price: 78, Category: models.CategoryMain},
	{ID: "m10", Name: "麥香魚", Price: 52, Category: models.CategoryMain},
	{ID: "m11", Name: "四盎司牛肉堡", Price: 92, Category: models.CategoryMain},
	{ID: "m12", Name: "雙層四盎司牛肉堡", Price: 132, Category: models.CategoryMain},
	{ID: "m13", Name: "麥脆雞腿(1塊)", Price: 69, Category: models.CategoryMain},

	// 極選系列
	{ID: "sig1", Name: "BLT安格斯黑牛堡", Price: 122, Category: models.CategoryMain},
	{ID: "sig2", Name: "BLT嫩煎雞腿堡", Price: 122, Category: models.CategoryMain},
	{ID: "sig3", Name: "蕈菇安格斯黑牛堡", Price: 132, Category: models.CategoryMain},
	{ID: "sig4", Name: "蕈菇主廚鷄腿堡", Price: 132, Category: models.CategoryMain},
	{ID: "sig5", Name: "帕瑪森安格斯牛肉堡", Price: 127, Category: models.CategoryMain},
	{ID: "sig6", Name: "帕瑪森主廚鷄腿堡", Price: 127, Category: models.CategoryMain},

	// 期間限定
	{ID: "lim1", Name: "炸蝦天婦羅安格斯牛肉堡", Price: 134, Category: models.CategoryMain},
	{ID: "lim2", Name: "炸蝦天婦羅辣鷄堡", Price: 134, Category: models.CategoryMain},
	{ID: "lim3", Name: "雙蝦天婦羅堡", Price: 134, Category: models.CategoryMain},

	// 配餐 (加價購，需搭配主餐)
	{ID: "s1", Name: "A經典配餐 (中薯+38飲)", Price: 65, Category: models.CategorySet},
	{ID: "s2", Name: "B清爽配餐 (沙拉+38飲)", Price: 70, Category: models.CategorySet},
	{ID: "s3", Name: "C勁脆配餐 (麥脆雞+38飲)", Price: 84, Category: models.CategorySet},
	{ID: "s4", Name: "D炫冰配餐 (冰炫風+小薯+38飲)", Price: 99, Category: models.CategorySet},
	{ID: "s5", Name: "E豪吃配餐 (雞塊4塊+小薯+38飲)", Price: 99, Category: models.CategorySet},
	{ID: "s6", Name: "F地瓜配餐 (地瓜條+38飲)", Price: 81, Category: models.CategorySet},

	// 點心
	{ID: "sn1", Name: "麥克雞塊(4塊)", Price: 48, Category: models.CategorySnack},
	{ID: "sn2", Name: "薯條(小)", Price: 40, Category: models.CategorySnack},
	{ID: "sn3", Name: "薯條(中)", Price: 50, Category: models.CategorySnack},
	{ID: "sn4", Name: "薯條(大)", Price: 66, Category: models.CategorySnack},
	{ID: "sn5", Name: "黃金地瓜條", Price: 66, Category: models.CategorySnack},
	{ID: "sn6", Name: "勁辣香雞翅(1對)", Price: 49, Category: models.CategorySnack},
	{ID: "sn7", Name: "蘋果派", Price: 40, Category: models.CategorySnack},
	{ID: "sn8", Name: "OREO冰炫風", Price: 59, Category: models.CategorySnack},
	{ID: "sn9", Name: "蛋捲冰淇淋", Price: 18, Category: models.CategorySnack},

	// 飲料
	{ID: "d1", Name: "可口可樂(中)", Price: 38, Category: models.CategoryDrink},
	{ID: "d2", Name: "雪碧(中)", Price: 38, Category: models.CategoryDrink},
	{ID: "d3", Name: "檸檬紅茶(中)", Price: 38, Category: models.CategoryDrink},
	{ID: "d4", Name: "無糖綠茶(中)", Price: 43, Category: models.CategoryDrink},
	{ID: "d5", Name: "玉米湯(小)", Price: 45, Category: models.CategoryDrink},
	{ID: "d6", Name: "玉米湯(大)", Price: 55, Category: models.CategoryDrink},
	{ID: "d7", Name: "焦糖冰奶茶", Price: 68, Category: models.CategoryDrink},
	{ID: "d8", Name: "蜂蜜奶茶(大)", Price: 68, Category: models.CategoryDrink},
}

var byID = func() map[string]models.MenuItem {
	m := make(map[string]models.MenuItem, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}()

// Items returns a copy of the full catalog in menu order.
func Items() []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	copy(out, items)
	return out
}

// ByID looks an item up by id.
func ByID(id string) (models.MenuItem, bool) {
	it, ok := byID[id]
	return it, ok
}

// ByCategory returns catalog items of one category, in menu order.
func ByCategory(c models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, it := range items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}
