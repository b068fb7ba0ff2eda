package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func validationDetails(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Details
}

func TestValidate_ValidProducts(t *testing.T) {
	tests := []struct {
		name    string
		product string
	}{
		{"minimal", `{"name":"EcoBottle","description":"Reusable bottle","price":19.99}`},
		{"free", `{"name":"Sticker","description":"Free sticker","price":0}`},
		{"max price", `{"name":"Yacht","description":"Big boat","price":1000000000}`},
		{"with category", `{"name":"Mug","description":"Coffee mug","price":12,"category":"Kitchen"}`},
		{"null category", `{"name":"Mug","description":"Coffee mug","price":12,"category":null}`},
		{"empty category", `{"name":"Mug","description":"Coffee mug","price":12,"category":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Validate(gjson.Parse(tt.product), gjson.Result{}, gjson.Result{})
			require.NoError(t, err)
			assert.NotEmpty(t, v.Product.Name)
			assert.Equal(t, AllPlatforms, v.Platforms)
			assert.Equal(t, ToneProfessional, v.Tone)
		})
	}
}

func TestValidate_ReportsAllMissingFields(t *testing.T) {
	_, err := Validate(gjson.Parse(`{}`), gjson.Result{}, gjson.Result{})
	details := validationDetails(t, err)

	assert.Contains(t, details, msgNameRequired)
	assert.Contains(t, details, msgDescriptionRequired)
	assert.Contains(t, details, msgPriceRequired)
	assert.Len(t, details, 3)
}

func TestValidate_ProductNotObject(t *testing.T) {
	for _, raw := range []string{``, `null`, `"bottle"`, `[1,2]`, `42`} {
		_, err := Validate(gjson.Parse(raw), gjson.Result{}, gjson.Result{})
		assert.Equal(t, []string{msgProductRequired}, validationDetails(t, err), "product %q", raw)
	}
}

func TestValidate_NameLength(t *testing.T) {
	product := func(name string) gjson.Result {
		return gjson.Parse(`{"name":"` + name + `","description":"d","price":1}`)
	}

	_, err := Validate(product(strings.Repeat("a", 200)), gjson.Result{}, gjson.Result{})
	assert.NoError(t, err)

	_, err = Validate(product(strings.Repeat("a", 201)), gjson.Result{}, gjson.Result{})
	assert.Equal(t, []string{msgNameTooLong}, validationDetails(t, err))
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    string
	}{
		{"blank name", `{"name":"   ","description":"d","price":1}`, msgNameRequired},
		{"numeric name", `{"name":12,"description":"d","price":1}`, msgNameRequired},
		{"long description", `{"name":"n","description":"` + strings.Repeat("d", 5001) + `","price":1}`, msgDescriptionTooLong},
		{"null price", `{"name":"n","description":"d","price":null}`, msgPriceRequired},
		{"string price", `{"name":"n","description":"d","price":"19.99"}`, msgPriceInvalid},
		{"negative price", `{"name":"n","description":"d","price":-0.01}`, msgPriceNegative},
		{"unrealistic price", `{"name":"n","description":"d","price":1000000000.01}`, msgPriceTooHigh},
		{"numeric category", `{"name":"n","description":"d","price":1,"category":7}`, msgCategoryInvalid},
		{"long category", `{"name":"n","description":"d","price":1,"category":"` + strings.Repeat("c", 101) + `"}`, msgCategoryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(gjson.Parse(tt.product), gjson.Result{}, gjson.Result{})
			assert.Equal(t, []string{tt.want}, validationDetails(t, err))
		})
	}
}

func TestValidate_TrimsFields(t *testing.T) {
	v, err := Validate(gjson.Parse(`{"name":"  Mug ","description":" Big mug\n","price":5,"category":" Home "}`), gjson.Result{}, gjson.Result{})
	require.NoError(t, err)
	assert.Equal(t, Product{Name: "Mug", Description: "Big mug", Price: 5, Category: "Home"}, v.Product)
}

func TestResolveTone(t *testing.T) {
	tests := []struct {
		raw  string
		want Tone
	}{
		{`"casual"`, ToneCasual},
		{`"humorous"`, ToneHumorous},
		{`"inspirational"`, ToneInspirational},
		{`"urgent"`, ToneUrgent},
		{`"professional"`, ToneProfessional},
		{`null`, ToneProfessional},
		{`123`, ToneProfessional},
		{`{}`, ToneProfessional},
		{`""`, ToneProfessional},
		{`"Casual"`, ToneProfessional},
		{``, ToneProfessional},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveTone(gjson.Parse(tt.raw)))
		})
	}
}

func TestResolvePlatforms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Platform
	}{
		{"omitted", ``, AllPlatforms},
		{"null", `null`, AllPlatforms},
		{"mixed", `["twitter","facebook","tiktok"]`, []Platform{PlatformTwitter}},
		{"keeps order", `["linkedin","twitter"]`, []Platform{PlatformLinkedIn, PlatformTwitter}},
		{"dedupes", `["instagram","instagram"]`, []Platform{PlatformInstagram}},
		{"only unknown", `["facebook","tiktok"]`, nil},
		{"not an array", `"twitter"`, nil},
		{"wrong item types", `[1,{"id":"twitter"}]`, nil},
		{"empty", `[]`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePlatforms(gjson.Parse(tt.raw)))
		})
	}
}

func TestValidate_NoValidPlatformIsBlocking(t *testing.T) {
	_, err := Validate(
		gjson.Parse(`{"name":"n","description":"d","price":1}`),
		gjson.Result{},
		gjson.Parse(`["facebook","tiktok"]`),
	)
	assert.Equal(t, []string{msgPlatformRequired}, validationDetails(t, err))
}

func TestValidate_PlatformErrorAccumulatesWithProductErrors(t *testing.T) {
	_, err := Validate(gjson.Parse(`{"description":"d","price":1}`), gjson.Result{}, gjson.Parse(`[]`))
	assert.Equal(t, []string{msgNameRequired, msgPlatformRequired}, validationDetails(t, err))
}

func TestParseRequest(t *testing.T) {
	req := ParseRequest([]byte(`{"product":{"name":"n"},"tone":"casual","platforms":["x"],"enableWebResearch":true}`))
	assert.True(t, req.Product.IsObject())
	assert.Equal(t, "casual", req.Tone.Str)
	assert.True(t, req.Platforms.IsArray())
	assert.True(t, req.EnableWebResearch)

	req = ParseRequest([]byte(`{"product":{},"enableWebResearch":"yes"}`))
	assert.False(t, req.EnableWebResearch)
	assert.False(t, req.Tone.Exists())
}
