package vcf

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"##fileformat=VCFv4.3", MetaInformation},
		{"##", MetaInformation},
		{"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO", Header},
		{"#", Header},
		{"NC_000001.10\t10001\trs1570391677\tT\tA\t.\t.\t.", Data},
		{"", Data},
		{" #CHROM", Data},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestRecord_Fields(t *testing.T) {
	r := ParseRecord("NC_000001.10\t10001\trs1570391677\tT\tA,G\t.\t.\t.")

	if chrom, ok := r.Chrom(); !ok || chrom != "NC_000001.10" {
		t.Errorf("Chrom() = %q, %v", chrom, ok)
	}
	if pos, ok := r.Pos(); !ok || pos != 10001 {
		t.Errorf("Pos() = %d, %v", pos, ok)
	}
	if ref, ok := r.Ref(); !ok || ref != "T" {
		t.Errorf("Ref() = %q, %v", ref, ok)
	}
	if !r.IsMultiAllelic() {
		t.Error("Expected multi-allelic ALT")
	}
	if alleles := r.AltAlleles(); len(alleles) != 2 || alleles[1] != "G" {
		t.Errorf("AltAlleles() = %v", alleles)
	}
	if _, ok := r.Field(8); ok {
		t.Error("Field(8) should be absent")
	}
}

func TestRecord_Pos(t *testing.T) {
	tests := []struct {
		pos    string
		want   int64
		wantOK bool
	}{
		{"10001", 10001, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"1e5", 0, false},
		{"", 0, false},
		{"12a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			r := ParseRecord("1\t" + tt.pos + "\t.\tA\tG")
			got, ok := r.Pos()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Pos() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRecord_ShortLine(t *testing.T) {
	r := ParseRecord("1\t100")

	if _, ok := r.Ref(); ok {
		t.Error("Ref should be absent")
	}
	if r.AltAlleles() != nil {
		t.Error("AltAlleles should be nil without ALT")
	}
	if r.IsMultiAllelic() {
		t.Error("Missing ALT is not multi-allelic")
	}
}
