package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article is one textile/fabric record. The (articleCode, colorCode,
// treatmentName) triple acts as the business key for bulk imports; it is
// deliberately not a unique index, so single creates may produce duplicates.
type Article struct {
	ID            primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	ArticleCode   string                 `json:"articleCode" bson:"articleCode"`
	ColorCode     string                 `json:"colorCode" bson:"colorCode"`
	TreatmentName string                 `json:"treatmentName" bson:"treatmentName"`
	ArticleName   string                 `json:"articleName" bson:"articleName"`
	ColorName     string                 `json:"colorName" bson:"colorName"`
	Supplier      string                 `json:"supplier" bson:"supplier"`
	SupplierCode  string                 `json:"supplierCode" bson:"supplierCode"`
	Section       string                 `json:"section" bson:"section"`
	Season        string                 `json:"season" bson:"season"`
	SuppArtCode   string                 `json:"suppArtCode" bson:"suppArtCode"`
	Composition   string                 `json:"composition" bson:"composition"`
	Weave         string                 `json:"weave" bson:"weave"`
	Stretch       string                 `json:"stretch" bson:"stretch"`
	Construction  string                 `json:"construction" bson:"construction"`
	WeightGSM     string                 `json:"weightGSM" bson:"weightGSM"`
	WidthCM       string                 `json:"widthCM" bson:"widthCM"`
	DyeType       string                 `json:"dyeType" bson:"dyeType"`
	CareLabel     string                 `json:"careLabel" bson:"careLabel"`
	BarcodeQR     string                 `json:"barcodeQR" bson:"barcodeQR"`
	BasePriceEUR  string                 `json:"basePriceEUR" bson:"basePriceEUR"`
	ExtraFields   map[string]interface{} `json:"extraFields" bson:"extraFields"`
	CreatedAt     time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt" bson:"updatedAt"`
}
