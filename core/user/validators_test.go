package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func Test_validatePassword(t *testing.T) {
	validate := newTestValidator()

	tests := []struct {
		name    string
		nu      NewUser
		wantTag string
	}{
		{
			name:    "too short",
			nu:      NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "short"},
			wantTag: pwdMinLenTag,
		},
		{
			name:    "whitespace",
			nu:      NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "no spaces allowed"},
			wantTag: pwdNoSpaceTag,
		},
		{
			name:    "all numeric",
			nu:      NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "1234567890"},
			wantTag: pwdNotAllNumTag,
		},
		{
			name:    "similar to email",
			nu:      NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "amani@test.cd1"},
			wantTag: pwdAttrSimTag,
		},
		{
			name: "good password",
			nu:   NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "S3cretPass!"},
		},
		{
			name:    "bad role",
			nu:      NewUser{Name: "Amani Juma", Email: "amani@test.cd", Password: "S3cretPass!", Role: "superuser"},
			wantTag: roleTag,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Struct() unexpected error = %v", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v, want ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Struct() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}
