package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
		wantOK   bool
	}{
		{name: "exact beef", category: "Beef", want: suggestionIndex["Beef"], wantOK: true},
		{name: "exact meat", category: "Meat", want: meatAdvice, wantOK: true},
		{name: "meat substring", category: "Processed Meat", want: meatAdvice, wantOK: true},
		{name: "phone substring", category: "Phone Case", want: smartphoneAdvice, wantOK: true},
		{name: "mobile substring", category: "Mobile Accessories", want: smartphoneAdvice, wantOK: true},
		{name: "laptop substring", category: "Gaming Laptop", want: laptopAdvice, wantOK: true},
		{name: "computer substring", category: "Computer Parts", want: laptopAdvice, wantOK: true},
		{name: "jacket substring", category: "Rain Jacket", want: fashionAdvice, wantOK: true},
		{name: "wear substring", category: "Winter Wear", want: fashionAdvice, wantOK: true},
		{name: "meat checked before phone", category: "Meat Phone", want: meatAdvice, wantOK: true},
		{name: "no match", category: "Books (Used)", wantOK: false},
		{name: "empty", category: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Suggest(tt.category)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)

			again, okAgain := Suggest(tt.category)
			assert.Equal(t, got, again)
			assert.Equal(t, ok, okAgain)
		})
	}
}
