package engine

// Fixed player-facing messages. Game-rule violations are never errors:
// every denied action terminates in one of these strings.
const (
	msgNotUnderstood  = "Non ti capisco. Prova con un altro comando."
	msgNothingHappens = "Non succede nulla."
	msgGameOver       = "Sei stato sconfitto. Usa /load per riprendere una partita salvata."
	msgComplete       = "L'avventura è conclusa. Grazie per aver giocato!"

	msgEnemiesBlock = "ATTENZIONE: ci sono ancora nemici da sconfiggere!"
	msgCombatBlock  = "Non puoi andartene nel bel mezzo di un combattimento!"
	msgNoWay        = "Non puoi andare in quella direzione."

	msgNothingInteresting = "Non c'è niente di interessante da osservare."

	msgNothingToPick = "Non c'è niente da raccogliere qui."
	msgCannotPick    = "Non puoi raccogliere questo oggetto."

	msgNothingToOpen = "Cosa vorresti aprire?"
	msgAlreadyOpen   = "È già aperto."
	msgCannotOpen    = "Non puoi aprirlo."

	msgCannotUse         = "Non puoi usarlo qui."
	msgNoWeaponForPoison = "Non hai un'arma su cui applicare il veleno."
	msgAlreadyHealthy    = "Sei già in piena salute."

	msgNothingToFight = "Non c'è niente da combattere qui."
)
