// ABOUTME: Interface text in Turkish and English
// ABOUTME: Lookup table for every label and status message the TUI shows
package ui

import "fmt"

// Lang selects the interface language
type Lang string

const (
	Turkish Lang = "tr"
	English Lang = "en"
)

// ParseLang returns the language for code, defaulting to Turkish
func ParseLang(code string) (Lang, error) {
	switch Lang(code) {
	case Turkish, English:
		return Lang(code), nil
	}
	return Turkish, fmt.Errorf("unsupported language %q", code)
}

// Next returns the other language
func (l Lang) Next() Lang {
	if l == English {
		return Turkish
	}
	return English
}

// Text holds the strings for one language
type Text struct {
	Title         string
	Empty         string
	Stop          string
	Playing       string
	Stopped       string
	NoSound       string
	Assigned      string
	Deleted       string
	Saved         string
	SaveError     string
	Loaded        string
	LoadError     string
	AssignError   string
	PlayError     string
	PromptAssign  string
	PromptSave    string
	PromptOpen    string
	Volume        string
	Help          string
	PromptHelp    string
	AboutVersion  string
	AboutLicense  string
	AboutDesc     string
	AboutWarranty string
}

var texts = map[Lang]Text{
	Turkish: {
		Title:         "Jingle Box",
		Empty:         "Boş",
		Stop:          "DUR",
		Playing:       "Ses çalınıyor",
		Stopped:       "Ses durduruldu.",
		NoSound:       "Bu butona atanmış bir ses dosyası yok.",
		Assigned:      "Ses atandı.",
		Deleted:       "Ses silindi.",
		Saved:         "Palet başarıyla kaydedildi.",
		SaveError:     "Palet kaydedilirken bir hata oluştu.",
		Loaded:        "Palet başarıyla yüklendi.",
		LoadError:     "Palet yüklenirken bir hata oluştu.",
		AssignError:   "Ses atanamadı.",
		PlayError:     "Ses çalınamadı.",
		PromptAssign:  "Ses Dosyası Seç",
		PromptSave:    "Paleti Kaydet",
		PromptOpen:    "Palet Yükle",
		Volume:        "Ses",
		Help:          "oklar:seç  enter:çal  s:dur  a:ata  d:sil  w:kaydet  o:aç  +/-:ses  l:dil  ?:hakkında  q:çık",
		PromptHelp:    "enter:tamam  esc:iptal",
		AboutVersion:  "Versiyon",
		AboutLicense:  "Lisans",
		AboutDesc:     "Bu program, radyo çalışmaları ya da çeşitli okul, tiyatro gibi etkinliklerde ses efektleri çalmaya yarar.",
		AboutWarranty: "Bu program hiçbir garanti getirmiyor.",
	},
	English: {
		Title:         "Jingle Box",
		Empty:         "Empty",
		Stop:          "STOP",
		Playing:       "Playing sound",
		Stopped:       "Sound stopped.",
		NoSound:       "No sound file is assigned to this button.",
		Assigned:      "Sound assigned.",
		Deleted:       "Sound deleted.",
		Saved:         "Palette successfully saved.",
		SaveError:     "An error occurred while saving the palette.",
		Loaded:        "Palette successfully loaded.",
		LoadError:     "An error occurred while loading the palette.",
		AssignError:   "Sound could not be assigned.",
		PlayError:     "Sound could not be played.",
		PromptAssign:  "Select Sound File",
		PromptSave:    "Save Palette",
		PromptOpen:    "Load Palette",
		Volume:        "Volume",
		Help:          "arrows:select  enter:play  s:stop  a:assign  d:delete  w:save  o:open  +/-:volume  l:language  ?:about  q:quit",
		PromptHelp:    "enter:ok  esc:cancel",
		AboutVersion:  "Version",
		AboutLicense:  "License",
		AboutDesc:     "This program is for playing sound effects for radio shows or various school and theater events.",
		AboutWarranty: "This program comes with no warranty.",
	},
}

// T returns the text table for l
func (l Lang) T() Text {
	if t, ok := texts[l]; ok {
		return t
	}
	return texts[Turkish]
}
