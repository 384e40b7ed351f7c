package world

import (
	"strconv"
	"strings"
)

// BonusStats accumulates the stat bonuses granted by equipped items.
type BonusStats struct {
	HP          int32
	AttMin      int32
	AttMax      int32
	AttMinTrans int32
	AttMaxTrans int32
	TransGauge  int32
	Crit        int32
	Evade       int32
	SpecTrans   int32
	Speed       int32
	TransDef    int32
	TransBotAtt int32
	TransSpeed  int32
	RangeAtt    int32
	Luk         int32
}

// statAdders maps a script stat name to the bonus field it accumulates
// into. Names not listed here are ignored.
var statAdders = map[string]func(*BonusStats, int32){
	"hpp":         func(b *BonusStats, v int32) { b.HP += v },
	"attmin":      func(b *BonusStats, v int32) { b.AttMin += v },
	"attmax":      func(b *BonusStats, v int32) { b.AttMax += v },
	"atttransmin": func(b *BonusStats, v int32) { b.AttMinTrans += v },
	"atttransmax": func(b *BonusStats, v int32) { b.AttMaxTrans += v },
	"transgauge":  func(b *BonusStats, v int32) { b.TransGauge += v },
	"crit":        func(b *BonusStats, v int32) { b.Crit += v },
	"evade":       func(b *BonusStats, v int32) { b.Evade += v },
	"spectrans":   func(b *BonusStats, v int32) { b.SpecTrans += v },
	"speed":       func(b *BonusStats, v int32) { b.Speed += v },
	"transbotdef": func(b *BonusStats, v int32) { b.TransDef += v },
	"transbotatt": func(b *BonusStats, v int32) { b.TransBotAtt += v },
	"transspeed":  func(b *BonusStats, v int32) { b.TransSpeed += v },
	"luk":         func(b *BonusStats, v int32) { b.Luk += v },
	"rangeatt":    func(b *BonusStats, v int32) { b.RangeAtt += v },
}

// ParseScript folds a semicolon-delimited `name,value` stat script into the
// bonus fields. A clause only counts when its terminator sits at index 5 or
// later from the cursor; scripts violating that are truncated there. After
// each clause the cursor skips the terminator plus one byte. Malformed
// integer values skip the clause without aborting the rest.
func (b *BonusStats) ParseScript(script string) {
	for {
		idx := strings.IndexByte(script, ';')
		if idx == -1 || idx < 5 {
			return
		}
		chunk := script[:idx]
		if idx+2 <= len(script) {
			script = script[idx+2:]
		} else {
			script = ""
		}
		name, rawVal, ok := strings.Cut(chunk, ",")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(rawVal))
		if err != nil {
			continue
		}
		if add, known := statAdders[name]; known {
			add(b, int32(v))
		}
	}
}
