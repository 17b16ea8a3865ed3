package reasoncode

// 业务拒绝 reason code 的全局清单。
// 各模块服务内枚举，由接口层统一映射为客户端提示文案。

// city
const (
	CityNotFound            = "city.not_found"
	CityNotOwner            = "city.not_owner"
	CityQueueFull           = "city.queue_full"
	CityMaxLevel            = "city.max_level"
	CityLevelZero           = "city.level_zero"
	CityPrereqMissing       = "city.prereq_missing"
	CityNotEnoughResource   = "city.not_enough_resource"
	CityNotEnoughPopulation = "city.not_enough_population"
	CityNotEnoughFavor      = "city.not_enough_favor"
	CityNotEnoughPoints     = "city.not_enough_points"
	CityWrongBuilding       = "city.wrong_building"
	CityAlreadyResearched   = "city.already_researched"
	CityResearchQueued      = "city.research_queued"
	CityNotTailTask         = "city.not_tail_task"
	CityTaskNotFound        = "city.task_not_found"
	CityNoWounded           = "city.no_wounded"
	CityWorkerSlotsFull     = "city.worker_slots_full"
	CityNoWorker            = "city.no_worker"
	CityPresetLimit         = "city.preset_limit"
	CityPresetNotFound      = "city.preset_not_found"
	CityUnknownGod          = "city.unknown_god"
	CityUnknownSpell        = "city.unknown_spell"
	CityWrongGod            = "city.wrong_god"
	CityUnknownSpellEffect  = "city.unknown_spell_effect"
	CityUnknownUnit         = "city.unknown_unit"
	CityUnknownResearch     = "city.unknown_research"
)

// movement
const (
	MovementNotFound            = "movement.not_found"
	MovementNotOwner            = "movement.not_owner"
	MovementEmptyRoster         = "movement.empty_roster"
	MovementNotEnoughUnits      = "movement.not_enough_units"
	MovementNoTransportCapacity = "movement.no_transport_capacity"
	MovementSameIslandOnly      = "movement.same_island_only"
	MovementBadFormation        = "movement.bad_formation"
	MovementGraceExpired        = "movement.grace_expired"
	MovementAlreadyReturning    = "movement.already_returning"
	MovementAlreadyArrived      = "movement.already_arrived"
	MovementNeedsVillager       = "movement.needs_villager"
	MovementNeverArrives        = "movement.never_arrives"
	MovementNoReinforcements    = "movement.no_reinforcements"
	MovementNotEnoughSilver     = "movement.not_enough_cave_silver"
	MovementMarketCapacity      = "movement.market_capacity"
)

// trade
const (
	TradeOfferNotFound = "trade.offer_not_found"
	TradeNotEnough     = "trade.not_enough_resource"
	TradeOwnOffer      = "trade.own_offer"
	TradeNotOfferOwner = "trade.not_offer_owner"
)

// alliance
const (
	AllianceNotLeader     = "alliance.not_leader"
	AllianceWonderExists  = "alliance.wonder_exists"
	AllianceNoWonder      = "alliance.no_wonder"
	AllianceNotMember     = "alliance.not_member"
	AllianceProgressShort = "alliance.progress_short"
	AllianceMaxLevel      = "alliance.max_level"
)

// world
const (
	WorldSlotTaken = "world.slot_taken"
	WorldFull      = "world.full"
)
