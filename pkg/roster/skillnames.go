package roster

import "github.com/tormund/gridiron/pkg/bbgame"

// skillNameIndex maps a normalised skill name (see NormaliseName) to its
// bbgame.Skill constant, covering every entry in the catalogue so a roster
// sheet can name a skill in whatever casing/spacing its author used.
var skillNameIndex = map[string]bbgame.Skill{
	"block":              bbgame.SkillBlock,
	"dirtyplayer":        bbgame.SkillDirtyPlayer,
	"fend":               bbgame.SkillFend,
	"kick":               bbgame.SkillKick,
	"pro":                bbgame.SkillPro,
	"surehands":          bbgame.SkillSureHands,
	"tackle":             bbgame.SkillTackle,
	"wrestle":            bbgame.SkillWrestle,
	"dodge":              bbgame.SkillDodge,
	"surefeet":           bbgame.SkillSureFeet,
	"catch":              bbgame.SkillCatch,
	"divingcatch":        bbgame.SkillDivingCatch,
	"divingtackle":       bbgame.SkillDivingTackle,
	"jumpup":             bbgame.SkillJumpUp,
	"leap":               bbgame.SkillLeap,
	"shadowing":          bbgame.SkillShadowing,
	"sidestep":           bbgame.SkillSideStep,
	"sprint":             bbgame.SkillSprint,
	"closecontrol":       bbgame.SkillCloseControl,
	"defensive":          bbgame.SkillDefensive,
	"armbar":             bbgame.SkillArmBar,
	"breaktackle":        bbgame.SkillBreakTackle,
	"grab":               bbgame.SkillGrab,
	"guard":              bbgame.SkillGuard,
	"juggernaut":         bbgame.SkillJuggernaut,
	"mightyblow":         bbgame.SkillMightyBlow,
	"multipleblock":      bbgame.SkillMultipleBlock,
	"pilingon":           bbgame.SkillPilingOn,
	"standfirm":          bbgame.SkillStandFirm,
	"stripball":          bbgame.SkillStripBall,
	"thickskull":         bbgame.SkillThickSkull,
	"foulappearance":     bbgame.SkillFoulAppearance,
	"accurate":           bbgame.SkillAccurate,
	"closelegs":          bbgame.SkillCloseLegs,
	"dump":               bbgame.SkillDump,
	"hailmary":           bbgame.SkillHailMary,
	"nervesofsteel":      bbgame.SkillNervesOfSteel,
	"pass":               bbgame.SkillPass,
	"runningpass":        bbgame.SkillRunningPass,
	"safethrow":          bbgame.SkillSafeThrow,
	"strongarm":          bbgame.SkillStrongArm,
	"safepair":           bbgame.SkillSafePair,
	"extraarms":          bbgame.SkillExtraArms,
	"bighand":            bbgame.SkillBigHand,
	"claws":              bbgame.SkillClaws,
	"disturbingpresence": bbgame.SkillDisturbingPresence,
	"horns":              bbgame.SkillHorns,
	"prehensiletail":     bbgame.SkillPrehensileTail,
	"tentacles":          bbgame.SkillTentacles,
	"twoheads":           bbgame.SkillTwoHeads,
	"verylonglegs":       bbgame.SkillVeryLongLegs,
	"ironhardskin":       bbgame.SkillIronHardSkin,
	"unnatural":          bbgame.SkillUnnatural,
	"alwayshungry":       bbgame.SkillAlwaysHungry,
	"ballandchain":       bbgame.SkillBallAndChain,
	"blinderswrestle":    bbgame.SkillBlindersWrestle,
	"bloodlust":          bbgame.SkillBloodlust,
	"bombardier":         bbgame.SkillBombardier,
	"bonehead":           bbgame.SkillBoneHead,
	"chainsaw":           bbgame.SkillChainsaw,
	"dauntless":          bbgame.SkillDauntless,
	"decay":              bbgame.SkillDecay,
	"hypnoticgaze":       bbgame.SkillHypnoticGaze,
	"loner":              bbgame.SkillLoner,
	"nohands":            bbgame.SkillNoHands,
	"projectilevomit":    bbgame.SkillProjectileVomit,
	"reallystupid":       bbgame.SkillReallyStupid,
	"regeneration":       bbgame.SkillRegeneration,
	"rightstuff":         bbgame.SkillRightStuff,
	"secretweapon":       bbgame.SkillSecretWeapon,
	"sneakygit":          bbgame.SkillSneakyGit,
	"stab":               bbgame.SkillStab,
	"stakes":             bbgame.SkillStakes,
	"stunty":             bbgame.SkillStunty,
	"takeroot":           bbgame.SkillTakeRoot,
	"throwteammate":      bbgame.SkillThrowTeamMate,
	"titchy":             bbgame.SkillTitchy,
	"wildanimal":         bbgame.SkillWildAnimal,
	"frenzy":             bbgame.SkillFrenzy,
}
