package services

import "github.com/Rakhulsr/go-taxonomy/app/models"

// The classifier rule table. Rules are matched in declaration order against
// the lower-cased "own name + parent name" context; the first rule with any
// keyword present in the context wins. The table is package-level and never
// mutated after init.

type OptionTemplate struct {
	Value        string
	DisplayValue string
	ColorCode    string
}

type FilterTemplate struct {
	Name        string
	DisplayName string
	Description string
	Type        models.FilterType
	DataType    models.FilterDataType
	Options     []OptionTemplate
}

type ClassifierRule struct {
	Keywords []string
	Filters  []FilterTemplate
}

// Assignment priority per filter name; anything unlisted gets
// defaultAssignPriority. Only "size" is marked required.
var assignPriority = map[string]int{
	"size":  1,
	"color": 2,
}

const defaultAssignPriority = 3

const requiredFilterName = "size"

var colorFilterTemplate = FilterTemplate{
	Name:        "color",
	DisplayName: "Color",
	Description: "Primary color of the product",
	Type:        models.FilterTypeMultiple,
	DataType:    models.FilterDataString,
	Options: []OptionTemplate{
		{Value: "black", DisplayValue: "Black", ColorCode: "000000"},
		{Value: "white", DisplayValue: "White", ColorCode: "ffffff"},
		{Value: "red", DisplayValue: "Red", ColorCode: "ff0000"},
		{Value: "blue", DisplayValue: "Blue", ColorCode: "0000ff"},
		{Value: "green", DisplayValue: "Green", ColorCode: "008000"},
	},
}

var genericSizeTemplate = FilterTemplate{
	Name:        "size",
	DisplayName: "Size",
	Description: "Generic product size",
	Type:        models.FilterTypeSingle,
	DataType:    models.FilterDataString,
	Options: []OptionTemplate{
		{Value: "xs", DisplayValue: "XS"},
		{Value: "s", DisplayValue: "S"},
		{Value: "m", DisplayValue: "M"},
		{Value: "l", DisplayValue: "L"},
		{Value: "xl", DisplayValue: "XL"},
	},
}

var classifierRules = []ClassifierRule{
	{
		Keywords: []string{"shirt", "top", "tee", "blouse", "jacket", "sweater"},
		Filters: []FilterTemplate{
			genericSizeTemplate,
			colorFilterTemplate,
			{
				Name:        "material",
				DisplayName: "Material",
				Description: "Fabric the garment is made of",
				Type:        models.FilterTypeMultiple,
				DataType:    models.FilterDataString,
				Options: []OptionTemplate{
					{Value: "cotton", DisplayValue: "Cotton"},
					{Value: "linen", DisplayValue: "Linen"},
					{Value: "polyester", DisplayValue: "Polyester"},
					{Value: "wool", DisplayValue: "Wool"},
				},
			},
		},
	},
	{
		Keywords: []string{"jean", "pant", "trouser", "short", "skirt"},
		Filters: []FilterTemplate{
			{
				Name:        "size",
				DisplayName: "Size",
				Description: "Waist size",
				Type:        models.FilterTypeSingle,
				DataType:    models.FilterDataString,
				Options: []OptionTemplate{
					{Value: "28", DisplayValue: "28"},
					{Value: "30", DisplayValue: "30"},
					{Value: "32", DisplayValue: "32"},
					{Value: "34", DisplayValue: "34"},
					{Value: "36", DisplayValue: "36"},
				},
			},
			colorFilterTemplate,
			{
				Name:        "fit",
				DisplayName: "Fit",
				Description: "Cut of the garment",
				Type:        models.FilterTypeSingle,
				DataType:    models.FilterDataString,
				Options: []OptionTemplate{
					{Value: "slim", DisplayValue: "Slim"},
					{Value: "regular", DisplayValue: "Regular"},
					{Value: "relaxed", DisplayValue: "Relaxed"},
				},
			},
		},
	},
	{
		Keywords: []string{"shoe", "sneaker", "boot", "sandal", "footwear"},
		Filters: []FilterTemplate{
			{
				Name:        "size",
				DisplayName: "Shoe Size",
				Description: "EU shoe size",
				Type:        models.FilterTypeSingle,
				DataType:    models.FilterDataNumber,
				Options: []OptionTemplate{
					{Value: "39", DisplayValue: "39"},
					{Value: "40", DisplayValue: "40"},
					{Value: "41", DisplayValue: "41"},
					{Value: "42", DisplayValue: "42"},
					{Value: "43", DisplayValue: "43"},
				},
			},
			colorFilterTemplate,
		},
	},
	{
		Keywords: []string{"electronic", "phone", "laptop", "tablet", "camera", "tv"},
		Filters: []FilterTemplate{
			{
				Name:        "brand",
				DisplayName: "Brand",
				Description: "Manufacturer brand",
				Type:        models.FilterTypeMultiple,
				DataType:    models.FilterDataString,
			},
			{
				Name:        "warranty",
				DisplayName: "Warranty",
				Description: "Warranty period in months",
				Type:        models.FilterTypeRange,
				DataType:    models.FilterDataNumber,
			},
			colorFilterTemplate,
		},
	},
	{
		Keywords: []string{"kitchen", "cookware", "utensil", "tableware"},
		Filters: []FilterTemplate{
			{
				Name:        "material",
				DisplayName: "Material",
				Description: "Material of the item",
				Type:        models.FilterTypeMultiple,
				DataType:    models.FilterDataString,
				Options: []OptionTemplate{
					{Value: "stainless-steel", DisplayValue: "Stainless Steel"},
					{Value: "cast-iron", DisplayValue: "Cast Iron"},
					{Value: "ceramic", DisplayValue: "Ceramic"},
					{Value: "glass", DisplayValue: "Glass"},
				},
			},
			colorFilterTemplate,
		},
	},
}

// defaultTemplates is used when no rule matches the context.
var defaultTemplates = []FilterTemplate{
	genericSizeTemplate,
	colorFilterTemplate,
}
