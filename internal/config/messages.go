package config

import "github.com/inodb/vibe-lint/internal/rule"

// messages holds the default message templates per language.
var messages = map[string]map[rule.Identity]string{
	"en": {
		rule.DataBeforeHeader: "Data line found before header line. This line will be ignored.",
		rule.BlankLine:        "Blank line found. This line will be ignored.",
		rule.EmptyVCF:         "No records found in VCF.",

		rule.FileFormat: "A single `fileformat` line is always required, must be the first line in the file. Allowed values are {{.allowed}}.",
		rule.Version:    "Unexpected VCF version. Expected values are {{.allowed}}.",

		rule.HeaderLine:       "The header line is missing. The line starts with `#` is required.",
		rule.HeaderColumn:     "The header line names the 8 fixed, mandatory columns. These columns are as follows: {{.columns}}.",
		rule.DuplicatedHeader: "Multiple header lines starting with # were found. All but the first header will be ignored.",

		rule.AllowedAlternateBase:     "The alternate sequence contains characters not allowed. Available characters are {{.allowed}}.",
		rule.AllowedReferenceBase:     "The reference sequence contains characters not allowed. Available characters are {{.allowed}}.",
		rule.AmbiguousAlternateBase:   "The alternate sequence contains IUPAC ambiguity codes. Refrain from using {{.disallowed}}.",
		rule.AmbiguousReferenceBase:   "The reference sequence contains IUPAC ambiguity codes. Refrain from using {{.disallowed}}.",
		rule.DeletionLength:           "The length of the deletion exceeds the allowed value. Maximum of length is {{.max}}.",
		rule.DiscontiguousChromosome:  "CHROM must form a contiguous block within the VCF file.",
		rule.IdenticalBases:           "Reference base(s) and alternative base(s) are identical.",
		rule.InsertionLength:          "The length of the insertion exceeds the allowed value. Maximum of length is {{.max}}.",
		rule.MismatchReferenceBase:    `The REF bases do not match the bases in the reference sequences. VCF = "{{.vcf}}", FASTA = "{{.fasta}}"`,
		rule.MissingAlternateBase:     "The alternate sequence is missing. Refrain from using {{.disallowed}}.",
		rule.MissingReferenceBase:     "The reference sequence is missing. Refrain from using {{.disallowed}}.",
		rule.MultipleAlternateAlleles: "The alternate sequence contains multiple variants.",
		rule.PositionFormat:           "POS should be a number.",
		rule.UnsortedPosition:         "Positions must be sorted numerically, in increasing order, within each reference sequence CHROM.",
	},
	"ja": {
		rule.DataBeforeHeader: "ヘッダー行より前にデータが記述されています。この行は無視されます。",
		rule.BlankLine:        "VCFに空のデータ行が見つかりました、この行は無視されます。",
		rule.EmptyVCF:         "VCFにレコードが存在しません。",

		rule.FileFormat: "ファイルの先頭に`fileformat`行が必ず1つ必要です。許可される値は{{.allowed}}です。",
		rule.Version:    "予期しないVCFバージョンです。期待されるバージョンは{{.allowed}}です。",

		rule.HeaderLine:       "ヘッダー行が見つかりません。#から始まるヘッダー行が必要です。",
		rule.HeaderColumn:     "ヘッダー行には8つの固定カラム{{.columns}}が必須です。",
		rule.DuplicatedHeader: "#から始まるヘッダー行が複数見つかりました。最初のヘッダー以外は無視されます。",

		rule.AllowedAlternateBase:     "ALTに使用できない文字が含まれます。使用できる文字は{{.allowed}}です。",
		rule.AllowedReferenceBase:     "REFに使用できない文字が含まれます。使用できる文字は{{.allowed}}です。",
		rule.AmbiguousAlternateBase:   "ALTに曖昧な塩基が含まれています。{{.disallowed}}は使用できません。",
		rule.AmbiguousReferenceBase:   "REFに曖昧な塩基が含まれています。{{.disallowed}}は使用できません。",
		rule.DeletionLength:           "欠損される塩基の長さが許容値を超えています。上限は{{.max}}です。",
		rule.DiscontiguousChromosome:  "CHROMはVCFの中で連続したブロックである必要があります。",
		rule.IdenticalBases:           "REFとALTの塩基が同一です。",
		rule.InsertionLength:          "挿入される塩基の長さが許容値を超えています。上限は{{.max}}です。",
		rule.MismatchReferenceBase:    `VCFのREFの塩基が参照配列の塩基と一致しません。VCF = "{{.vcf}}", FASTA = "{{.fasta}}"`,
		rule.MissingAlternateBase:     "ALTに塩基が指定されていません。{{.disallowed}}は使用できません。",
		rule.MissingReferenceBase:     "REFに塩基が指定されていません。{{.disallowed}}は使用できません。",
		rule.MultipleAlternateAlleles: "ALTに複数の変異が含まれます。",
		rule.PositionFormat:           "POSは数値でなければなりません。",
		rule.UnsortedPosition:         "POSは各参照配列CHROMの中では昇順で数値ソートされている必要があります。",
	},
}
