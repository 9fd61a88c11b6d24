package main

const (
	gunModelWidth  = 11
	gunModelHeight = 3
)

var playerGunModel = buildPlayerGunModel()

// buildPlayerGunModel assembles the first-person weapon as a small grid of
// gun-part tiles. Column zero is the muzzle end, the last column sits by the
// eye, and row zero is the top of the weapon.
func buildPlayerGunModel() [gunModelHeight][gunModelWidth]tileKind {
	rows := [gunModelHeight]string{
		".....===^..",
		"Mbbbb####SS",
		"......mtg..",
	}
	var model [gunModelHeight][gunModelWidth]tileKind
	for y, row := range rows {
		for x := 0; x < gunModelWidth; x++ {
			model[y][x] = gunPartForRune(row[x])
		}
	}
	return model
}

// gunPartForRune maps the model sketch characters to gun part kinds. Dots
// are empty cells.
func gunPartForRune(r byte) tileKind {
	switch r {
	case 'M':
		return gunMuzzle
	case 'b':
		return gunBarrel
	case '#':
		return gunBody
	case 'S':
		return gunStock
	case '=':
		return gunRail
	case '^':
		return gunSight
	case 'm':
		return gunMagazine
	case 't':
		return gunTrigger
	case 'g':
		return gunGrip
	}
	return tileAir
}
