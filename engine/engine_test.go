package engine

import (
	"strings"
	"testing"

	"github.com/avolpe/maniero/engine/doors"
	"github.com/avolpe/maniero/engine/notify"
	"github.com/avolpe/maniero/engine/parser"
	"github.com/avolpe/maniero/engine/rules"
	"github.com/avolpe/maniero/engine/world"
	"github.com/avolpe/maniero/types"
)

// testEngine builds a four-room fixture: an atrium with a locked door east,
// a hall with a goblin to the north, and a memory sink recording every
// state change. Seed is fixed; the test weapon never crits.
func testEngine(t *testing.T) (*Engine, *notify.Memory) {
	t.Helper()

	player := &world.Character{
		ID: 0, Name: "Viandante",
		MaxHP: 100, HP: 100, Attack: 4, Defense: 2,
		Kind: world.KindPlayer, Alive: true,
	}
	w := world.New(player)

	chiave := &world.Object{ID: 10, Name: "chiave di ferro", Aliases: []string{"chiave"}, Pickupable: true}
	pozione := &world.Object{ID: 2, Name: "pozione di cura", Aliases: []string{"pozione"}, Pickupable: true}
	spada := &world.Object{ID: 12, Name: "spada", Pickupable: true,
		Weapon: &world.WeaponStats{Attack: 5, CritChance: 0, CritMult: 2, Category: "lama"}}
	erba := &world.Object{ID: 22, Name: "erba medica", Aliases: []string{"erba"}, Pickupable: true}
	ampolla := &world.Object{ID: 23, Name: "ampolla vuota", Aliases: []string{"ampolla"}, Pickupable: true}
	vigore := &world.Object{ID: 24, Name: "pozione di vigore", Aliases: []string{"vigore"}, Pickupable: true}
	altare := &world.Object{ID: 30, Name: "altare"}
	leva := &world.Object{ID: 31, Name: "leva arrugginita", Aliases: []string{"leva"}}
	fiala := &world.Object{ID: 21, Name: "fiala di veleno", Aliases: []string{"fiala"}, Pickupable: true}
	amuleto := &world.Object{ID: 40, Name: "amuleto antico", Aliases: []string{"amuleto"}, Pickupable: true}
	statuetta := &world.Object{ID: 7, Name: "statuetta", Pickupable: true}
	cassa := &world.Object{ID: 100, Name: "cassa", Openable: true, Container: true,
		Contents: []*world.Object{chiave}}

	for _, o := range []*world.Object{chiave, pozione, spada, erba, ampolla, vigore, altare, leva, fiala, amuleto, statuetta, cassa} {
		w.Catalog[o.ID] = o
	}

	w.Rooms[0] = &world.Room{
		ID: 0, Name: "Atrio", Description: "Un atrio polveroso.",
		Look:      "Polvere ovunque, e una cassa in un angolo.",
		Neighbors: map[types.Direction]int{types.North: 1, types.East: 2},
		Objects:   []*world.Object{cassa, erba, altare, leva, statuetta},
	}
	w.Rooms[1] = &world.Room{
		ID: 1, Name: "Salone", Description: "Il grande salone.",
		Neighbors: map[types.Direction]int{types.South: 0, types.North: 3},
		Enemies: []*world.Character{{
			ID: 50, Name: "goblin", MaxHP: 40, HP: 40, Attack: 6, Defense: 1,
			Kind: world.KindGoblin, Alive: true,
		}},
	}
	w.Rooms[2] = &world.Room{
		ID: 2, Name: "Biblioteca", Description: "Scaffali fino al soffitto.",
		Neighbors: map[types.Direction]int{types.West: 0},
	}
	w.Rooms[3] = &world.Room{
		ID: 3, Name: "Cripta", Description: "Aria di terra smossa.",
		Neighbors: map[types.Direction]int{types.South: 1},
	}

	for _, o := range []*world.Object{pozione, spada, ampolla, fiala, amuleto} {
		w.AddToInventory(o)
	}

	rs := rules.New()
	rs.Behaviors[2] = rules.Behavior{Tag: rules.TagHeal, Amount: 25}
	rs.Behaviors[24] = rules.Behavior{Tag: rules.TagHeal, Amount: 50}
	rs.Behaviors[10] = rules.Behavior{Tag: rules.TagKey}
	rs.Behaviors[30] = rules.Behavior{Tag: rules.TagAltar, Text: "Un brivido ti percorre il braccio."}
	rs.Behaviors[31] = rules.Behavior{Tag: rules.TagScroll, Text: "La leva scatta.", Room: 3, RoomBound: true}
	rs.Behaviors[21] = rules.Behavior{Tag: rules.TagPoison, Amount: 3}
	rs.Behaviors[40] = rules.Behavior{
		Tag: rules.TagEndgame, Dir: types.North,
		Text:    "L'amuleto vibra: la via è a nord.",
		Refusal: "L'amuleto ti strattona verso nord.",
	}
	rs.Recipes = []rules.Recipe{{Components: []int{22, 23}, Result: 24, Text: "Ottieni una pozione di vigore."}}
	rs.Phrases["usa corda"] = "Non c'è nessuna corda qui."
	rs.FinalRoom = 1
	rs.Completion = "Sei libero. Fine dell'avventura."

	dt := doors.NewTable()
	dt.Add(0, types.East, 10)

	sink := &notify.Memory{}
	eng := New(Config{
		World: w,
		Info:  types.GameInfo{Title: "Prova", Version: "0.0.1"},
		Commands: []types.Command{
			{Type: types.CommandNorth, Name: "nord", Aliases: []string{"n"}},
			{Type: types.CommandSouth, Name: "sud", Aliases: []string{"s"}},
			{Type: types.CommandEast, Name: "est", Aliases: []string{"e"}},
			{Type: types.CommandWest, Name: "ovest", Aliases: []string{"o"}},
			{Type: types.CommandLook, Name: "osserva", Aliases: []string{"guarda"}},
			{Type: types.CommandPickup, Name: "raccogli", Aliases: []string{"prendi"}},
			{Type: types.CommandOpen, Name: "apri"},
			{Type: types.CommandUse, Name: "usa"},
			{Type: types.CommandFight, Name: "combatti", Aliases: []string{"attacca"}},
		},
		Stopwords: parser.NewStopwords([]string{"il", "lo", "la", "di"}),
		Rules:     rs,
		Doors:     dt,
		Sink:      sink,
		Seed:      42,
	})
	return eng, sink
}

func TestStepEmptyInput(t *testing.T) {
	e, _ := testEngine(t)
	for _, in := range []string{"", "   ", "il la di"} {
		if got := e.Step(in); got != "" {
			t.Errorf("Step(%q) = %q; want empty", in, got)
		}
	}
}

func TestStepNotUnderstood(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("saltella allegramente"); got != msgNotUnderstood {
		t.Errorf("Step = %q; want %q", got, msgNotUnderstood)
	}
}

func TestLook(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("osserva"); got != "Polvere ovunque, e una cassa in un angolo." {
		t.Errorf("Step(osserva) = %q", got)
	}
	e.World.MoveTo(2)
	if got := e.Step("guarda"); got != msgNothingInteresting {
		t.Errorf("look in bare room = %q; want %q", got, msgNothingInteresting)
	}
}

func TestMoveIntoEnemyRoomWarns(t *testing.T) {
	e, _ := testEngine(t)
	out := e.Step("nord")
	if !strings.Contains(out, "Salone") {
		t.Errorf("movement output should name the destination: %q", out)
	}
	if !strings.Contains(out, "C'è goblin ad attenderti") {
		t.Errorf("arrival should warn about the waiting enemy: %q", out)
	}
	if e.World.CurrentID != 1 {
		t.Errorf("CurrentID = %d; want 1", e.World.CurrentID)
	}
}

func TestMoveBlockedByLivingEnemies(t *testing.T) {
	e, _ := testEngine(t)
	e.Step("nord")
	for _, dir := range []string{"nord", "sud"} {
		if got := e.Step(dir); got != msgEnemiesBlock {
			t.Errorf("Step(%q) = %q; want %q", dir, got, msgEnemiesBlock)
		}
	}
	if e.World.CurrentID != 1 {
		t.Errorf("player moved despite living enemies: room %d", e.World.CurrentID)
	}
}

func TestMoveNoExit(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("ovest"); got != msgNoWay {
		t.Errorf("Step(ovest) = %q; want %q", got, msgNoWay)
	}
}

func TestMoveBlockedByCombatSession(t *testing.T) {
	e, _ := testEngine(t)
	e.Combat = Session{Active: true}
	if got := e.Step("nord"); got != msgCombatBlock {
		t.Errorf("Step(nord) = %q; want %q", got, msgCombatBlock)
	}
}

func TestDoorBlocksWithoutKey(t *testing.T) {
	e, _ := testEngine(t)
	out := e.Step("est")
	if out != "La porta è chiusa a chiave. Ti serve: chiave di ferro." {
		t.Errorf("Step(est) = %q", out)
	}
	if e.World.CurrentID != 0 {
		t.Errorf("player passed a locked door: room %d", e.World.CurrentID)
	}
}

func TestDoorUnlocksWithKeyAndStaysOpen(t *testing.T) {
	e, sink := testEngine(t)
	e.Step("apri cassa")
	e.Step("raccogli chiave")

	out := e.Step("est")
	if !strings.HasPrefix(out, "Usi chiave di ferro per aprire la porta.") {
		t.Fatalf("unlock line missing: %q", out)
	}
	if !strings.Contains(out, "Biblioteca") {
		t.Errorf("movement should continue into the room: %q", out)
	}
	if len(sink.ByType(notify.DoorUnlocked)) != 1 {
		t.Error("door unlock not recorded by the sink")
	}

	// Losing the key afterwards must not re-lock the passage.
	e.Step("ovest")
	e.World.RemoveFromInventory(10)
	out = e.Step("est")
	if strings.Contains(out, "chiusa a chiave") || strings.Contains(out, "Usi chiave") {
		t.Errorf("unlock must be permanent: %q", out)
	}
	if e.World.CurrentID != 2 {
		t.Errorf("CurrentID = %d; want 2", e.World.CurrentID)
	}
}

func TestOpenContainer(t *testing.T) {
	e, sink := testEngine(t)
	out := e.Step("apri cassa")
	if out != "Apri cassa. All'interno trovi: chiave di ferro." {
		t.Errorf("Step(apri cassa) = %q", out)
	}
	if e.World.Current().FindObject(10) == nil {
		t.Error("contents should land in the room the chest was opened in")
	}
	if got := e.Step("apri cassa"); got != msgAlreadyOpen {
		t.Errorf("second open = %q; want %q", got, msgAlreadyOpen)
	}
	if len(sink.ByType(notify.ObjectOpened)) != 1 {
		t.Error("open not recorded by the sink")
	}
}

func TestOpenEmptyHands(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("apri"); got != msgNothingToOpen {
		t.Errorf("Step(apri) = %q; want %q", got, msgNothingToOpen)
	}
	if got := e.Step("apri spada"); got != msgCannotOpen {
		t.Errorf("Step(apri spada) = %q; want %q", got, msgCannotOpen)
	}
}

func TestPickup(t *testing.T) {
	e, sink := testEngine(t)
	out := e.Step("raccogli erba")
	if out != "Hai raccolto: erba medica." {
		t.Errorf("Step(raccogli erba) = %q", out)
	}
	if !e.World.HasItem(22) {
		t.Error("picked object missing from inventory")
	}
	if e.World.Current().FindObject(22) != nil {
		t.Error("picked object still in the room")
	}
	if len(sink.ByType(notify.ObjectMoved)) != 1 {
		t.Error("pickup not recorded by the sink")
	}
}

func TestPickupByID(t *testing.T) {
	e, _ := testEngine(t)
	if out := e.Step("raccogli 7"); out != "Hai raccolto: statuetta." {
		t.Errorf("Step(raccogli 7) = %q", out)
	}
}

func TestPickupDenied(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("raccogli altare"); got != msgCannotPick {
		t.Errorf("Step(raccogli altare) = %q; want %q", got, msgCannotPick)
	}
	if got := e.Step("raccogli nuvola"); got != msgNothingToPick {
		t.Errorf("Step(raccogli nuvola) = %q; want %q", got, msgNothingToPick)
	}
}

func TestUseHeal(t *testing.T) {
	e, _ := testEngine(t)
	e.World.Player.HP = 60
	out := e.Step("usa pozione")
	if out != "Recuperi 25 punti vita (85/100)." {
		t.Errorf("Step(usa pozione) = %q", out)
	}
	if e.World.HasItem(2) {
		t.Error("potion should be consumed")
	}
}

func TestUseHealAtFullHP(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("usa pozione"); got != msgAlreadyHealthy {
		t.Errorf("Step = %q; want %q", got, msgAlreadyHealthy)
	}
	if !e.World.HasItem(2) {
		t.Error("potion must not be consumed at full HP")
	}
}

func TestUseStopwordPhrase(t *testing.T) {
	e, _ := testEngine(t)
	e.World.Player.HP = 60
	// "di" is a stopword; the compound name still resolves to the potion.
	out := e.Step("usa pozione di cura")
	if out != "Recuperi 25 punti vita (85/100)." {
		t.Errorf("Step(usa pozione di cura) = %q", out)
	}
}

func TestUsePoison(t *testing.T) {
	e, _ := testEngine(t)
	out := e.Step("usa fiala")
	if !strings.Contains(out, "veleno") {
		t.Errorf("Step(usa fiala) = %q", out)
	}
	spada := e.World.FindInventory(12)
	if spada == nil || !spada.Weapon.Poisoned || spada.Weapon.PoisonDamage != 3 {
		t.Error("poison should coat the first carried weapon")
	}
	if e.World.HasItem(21) {
		t.Error("vial should be consumed")
	}
}

func TestUsePoisonWithoutWeapon(t *testing.T) {
	e, _ := testEngine(t)
	e.World.RemoveFromInventory(12)
	if got := e.Step("usa fiala"); got != msgNoWeaponForPoison {
		t.Errorf("Step = %q; want %q", got, msgNoWeaponForPoison)
	}
	if !e.World.HasItem(21) {
		t.Error("vial must not be consumed when no weapon is carried")
	}
}

func TestUseAltar(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("usa altare"); got != "Un brivido ti percorre il braccio." {
		t.Errorf("Step(usa altare) = %q", got)
	}
	if e.World.Current().FindObject(30) == nil {
		t.Error("altar is not consumable")
	}
}

func TestUseKeyHint(t *testing.T) {
	e, _ := testEngine(t)
	e.Step("apri cassa")
	e.Step("raccogli chiave")
	if got := e.Step("usa chiave"); got != "Forse andrebbe usata sulla porta giusta." {
		t.Errorf("Step(usa chiave) = %q", got)
	}
}

func TestUseRoomConstraint(t *testing.T) {
	e, _ := testEngine(t)
	// The lever only works in the crypt (room 3); the player is in the atrium.
	if got := e.Step("usa leva"); got != msgCannotUse {
		t.Errorf("Step(usa leva) = %q; want %q", got, msgCannotUse)
	}
}

func TestUseRoomConstraintBindsRoomZero(t *testing.T) {
	e, _ := testEngine(t)
	// Room 0 is a valid binding target, not the "anywhere" case.
	b := e.Rules.Behaviors[31]
	b.Room = 0
	e.Rules.Behaviors[31] = b
	if got := e.Step("usa leva"); got != "La leva scatta." {
		t.Errorf("Step(usa leva) bound to room 0 = %q", got)
	}
	e.World.Rooms[1].Enemies = nil
	e.Step("nord")
	e.World.Rooms[1].AddObject(e.World.Catalog[31])
	if got := e.Step("usa leva"); got != msgCannotUse {
		t.Errorf("Step(usa leva) outside room 0 = %q; want %q", got, msgCannotUse)
	}
}

func TestUseHealClampsToFull(t *testing.T) {
	e, _ := testEngine(t)
	// A heal without an amount restores to full, clamped at MaxHP.
	e.Rules.Behaviors[2] = rules.Behavior{Tag: rules.TagHeal}
	e.World.Player.HP = 70
	if got := e.Step("usa pozione"); got != "Recuperi 30 punti vita (100/100)." {
		t.Errorf("Step(usa pozione) = %q", got)
	}
	if e.World.Player.HP != 100 {
		t.Errorf("player HP = %d; want 100", e.World.Player.HP)
	}
}

func TestUsePhraseFallback(t *testing.T) {
	e, _ := testEngine(t)
	if got := e.Step("usa corda"); got != "Non c'è nessuna corda qui." {
		t.Errorf("Step(usa corda) = %q", got)
	}
	if got := e.Step("usa nebbia"); got != msgCannotUse {
		t.Errorf("Step(usa nebbia) = %q; want %q", got, msgCannotUse)
	}
}

func TestCraft(t *testing.T) {
	e, _ := testEngine(t)
	e.Step("raccogli erba")
	out := e.Step("usa erba")
	if out != "Ottieni una pozione di vigore." {
		t.Errorf("Step(usa erba) = %q", out)
	}
	if e.World.HasItem(22) || e.World.HasItem(23) {
		t.Error("components should be consumed")
	}
	if !e.World.HasItem(24) {
		t.Error("result should be granted")
	}
}

func TestEscortAndCompletion(t *testing.T) {
	e, _ := testEngine(t)
	// Clear the hall so arrival is about completion, not combat.
	e.World.Rooms[1].Enemies = nil

	out := e.Step("usa amuleto")
	if out != "L'amuleto vibra: la via è a nord." {
		t.Fatalf("Step(usa amuleto) = %q", out)
	}
	if e.World.Escort == nil {
		t.Fatal("escort state not set")
	}
	if got := e.Step("est"); got != "L'amuleto ti strattona verso nord." {
		t.Errorf("off-escort direction = %q; want the refusal", got)
	}
	out = e.Step("nord")
	if !strings.Contains(out, "Salone") || !strings.Contains(out, "Sei libero. Fine dell'avventura.") {
		t.Errorf("completion output = %q", out)
	}
	if !e.World.Complete {
		t.Error("Complete not set on reaching the final room")
	}
	if got := e.Step("sud"); got != msgComplete {
		t.Errorf("post-completion Step = %q; want %q", got, msgComplete)
	}
}

func TestGameOverFreezesPlay(t *testing.T) {
	e, _ := testEngine(t)
	e.World.GameOver = true
	for _, in := range []string{"nord", "osserva", "usa pozione"} {
		if got := e.Step(in); got != msgGameOver {
			t.Errorf("Step(%q) = %q; want %q", in, got, msgGameOver)
		}
	}
}

func TestNotificationsCarryHP(t *testing.T) {
	e, sink := testEngine(t)
	e.World.Player.HP = 60
	e.Step("usa pozione")
	hps := sink.ByType(notify.CharacterHP)
	if len(hps) != 1 {
		t.Fatalf("recorded %d HP changes; want 1", len(hps))
	}
	if hps[0].Data["hp"] != 85 {
		t.Errorf("HP change data = %v; want hp 85", hps[0].Data)
	}
}
