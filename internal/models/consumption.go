package models

type ConsumptionMode string

const (
	ModeNone     ConsumptionMode = ""
	ModeOnSite   ConsumptionMode = "on-site"
	ModeTakeaway ConsumptionMode = "takeaway"
)
