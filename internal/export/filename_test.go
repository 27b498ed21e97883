package export

import "testing"

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		company string
		want    string
	}{
		{
			name:    "with company",
			catalog: "Marketing",
			company: "Acme Corp",
			want:    "Marketing_seleccionados_Acme_Corp.pdf",
		},
		{
			name:    "without company",
			catalog: "Marketing",
			company: "",
			want:    "Marketing_seleccionados.pdf",
		},
		{
			name:    "company with whitespace runs",
			catalog: "Servicios",
			company: "Mi  Empresa \t SA",
			want:    "Servicios_seleccionados_Mi_Empresa_SA.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.catalog, tt.company); got != tt.want {
				t.Fatalf("Filename(%q, %q) = %q, want %q", tt.catalog, tt.company, got, tt.want)
			}
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{25000, "250.00"},
		{15000, "150.00"},
		{7550, "75.50"},
		{5, "0.05"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(tt.cents); got != tt.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
