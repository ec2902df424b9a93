// Torque Lite Pro - Torque Pro OBD-II Telemetry Receiver
// Copyright 2026 Marlboro62
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Marlboro62/Torque-Lite-Pro

package pid

// Canonical field names of the GPS components.
const (
	FieldLatitude  = "gpslat"
	FieldLongitude = "gpslon"
	FieldAltitude  = "gps_height"
	FieldAccuracy  = "gps_acc"
	FieldGPSSpeed  = "gps_spd"
	FieldOBDSpeed  = "speed_obd"
)

// entry is one row of the static table; descriptors are derived from it.
type entry struct {
	code, key, en, fr, unit string
}

var table = []entry{
	{"04", "engine_load", "Engine Load", "Charge moteur", "%"},
	{"05", "coolant_temp", "Engine Coolant Temperature", "Température liquide de refroidissement", "°C"},
	{"06", "fuel_trim_b1_short", "Fuel Trim Bank 1 Short Term", "Correction carburant banc 1 court terme", "%"},
	{"07", "fuel_trim_b1_long", "Fuel Trim Bank 1 Long Term", "Correction carburant banc 1 long terme", "%"},
	{"08", "fuel_trim_b2_short", "Fuel Trim Bank 2 Short Term", "Correction carburant banc 2 court terme", "%"},
	{"09", "fuel_trim_b2_long", "Fuel Trim Bank 2 Long Term", "Correction carburant banc 2 long terme", "%"},
	{"0a", "fuel_pressure", "Fuel pressure", "Pression carburant", "kPa"},
	{"0b", "intake_manifold_pressure", "Intake Manifold Pressure", "Pression collecteur d'admission", "kPa"},
	{"0c", "engine_rpm", "Engine RPM", "Régime moteur", "rpm"},
	{"0d", FieldOBDSpeed, "Speed (OBD)", "Vitesse (OBD)", "km/h"},
	{"0e", "timing_advance", "Timing Advance", "Avance à l'allumage", "°"},
	{"0f", "intake_air_temp", "Intake Air Temperature", "Température air d'admission", "°C"},
	{"10", "mass_air_flow_rate", "Mass Air Flow Rate", "Débit d'air massique", "g/s"},
	{"11", "throttle_position_manifold", "Throttle Position (Manifold)", "Position papillon", "%"},
	{"1f", "run_time_since_start", "Run time since engine start", "Temps depuis démarrage moteur", "s"},
	{"21", "dist_mil_on", "Distance travelled with MIL/CEL lit", "Distance avec voyant moteur allumé", "km"},

	{"ff1001", FieldGPSSpeed, "Vehicle Speed (GPS)", "Vitesse (GPS)", "km/h"},
	{"ff1005", FieldLongitude, "GPS Longitude", "Longitude GPS", "°"},
	{"ff1006", FieldLatitude, "GPS Latitude", "Latitude GPS", "°"},
	{"ff1010", FieldAltitude, "GPS Altitude", "Altitude GPS", "m"},
	{"ff1239", FieldAccuracy, "GPS Accuracy", "Précision GPS", "m"},

	{"ff1201", "mpg_instant", "Miles Per Gallon(Instant)", "Miles par gallon (instantané)", "mpg"},
	{"ff1202", "turbo_boost_vacuum_gauge", "Turbo Boost & Vacuum Gauge", "Pression turbo / dépression", "psi"},
	{"ff1203", "kpl_instant", "Kilometers Per Litre(Instant)", "Kilomètres par litre (instantané)", "kpl"},
	{"ff1204", "trip_distance", "Trip Distance", "Distance du trajet", "km"},
	{"ff1205", "mpg_trip_avg", "Trip average MPG", "MPG moyen du trajet", "mpg"},
	{"ff1206", "kpl_trip_avg", "Trip average KPL", "km/L moyen du trajet", "kpl"},
	{"ff1207", "l_per_100_instant", "Litres Per 100 Kilometer(Instant)", "Litres aux 100 km (instantané)", "L/100km"},
	{"ff1208", "l_per_100_trip_avg", "Trip average Litres/100 KM", "L/100 km moyen du trajet", "L/100km"},
	{"ff120c", "trip_distance_stored", "Trip distance (stored in vehicle profile)", "Distance du trajet (profil véhicule)", "km"},
	{"ff1214", "o2_b1s1_voltage", "O2 Bank 1 Sensor 1 Voltage", "Tension sonde O2 banc 1 capteur 1", "V"},
	{"ff1215", "o2_b1s2_voltage", "O2 Bank 1 Sensor 2 Voltage", "Tension sonde O2 banc 1 capteur 2", "V"},
	{"ff1216", "o2_b1s3_voltage", "O2 Bank 1 Sensor 3 Voltage", "Tension sonde O2 banc 1 capteur 3", "V"},
	{"ff1217", "o2_b1s4_voltage", "O2 Bank 1 Sensor 4 Voltage", "Tension sonde O2 banc 1 capteur 4", "V"},
	{"ff1218", "o2_b2s1_voltage", "O2 Bank 2 Sensor 1 Voltage", "Tension sonde O2 banc 2 capteur 1", "V"},
	{"ff1219", "o2_b2s2_voltage", "O2 Bank 2 Sensor 2 Voltage", "Tension sonde O2 banc 2 capteur 2", "V"},
	{"ff121a", "o2_b2s3_voltage", "O2 Bank 2 Sensor 3 Voltage", "Tension sonde O2 banc 2 capteur 3", "V"},
	{"ff121b", "o2_b2s4_voltage", "O2 Bank 2 Sensor 4 Voltage", "Tension sonde O2 banc 2 capteur 4", "V"},
	{"ff1220", "accel_x", "Acceleration Sensor(X axis)", "Accélération (axe X)", "g"},
	{"ff1221", "accel_y", "Acceleration Sensor(Y axis)", "Accélération (axe Y)", "g"},
	{"ff1222", "accel_z", "Acceleration Sensor(Z axis)", "Accélération (axe Z)", "g"},
	{"ff1223", "accel_total", "Acceleration Sensor(Total)", "Accélération (totale)", "g"},
	{"ff1225", "torque", "Torque", "Couple", "ft-lb"},
	{"ff1226", "horsepower_wheels", "Horsepower (At the wheels)", "Puissance aux roues", "hp"},
	{"ff122d", "time_0_60mph", "0-60mph Time", "Temps 0-60 mph", "s"},
	{"ff122e", "time_0_100kph", "0-100kph Time", "Temps 0-100 km/h", "s"},
	{"ff122f", "time_quarter_mile", "1/4 mile time", "Temps 1/4 mile", "s"},
	{"ff1230", "time_eighth_mile", "1/8 mile time", "Temps 1/8 mile", "s"},
	{"ff1237", "spd_diff_gps_obd", "GPS vs OBD Speed difference", "Écart vitesse GPS/OBD", "km/h"},
	{"ff1238", "voltage_obd_adapter", "Voltage (OBD Adapter)", "Tension (adaptateur OBD)", "V"},
	{"ff123a", "gps_satellites", "GPS Satellites", "Satellites GPS", ""},
	{"ff123b", "gps_bearing", "GPS Bearing", "Cap GPS", "°"},
	{"ff1240", "o2_o2l1_wide_eq_ratio", "O2 Sensor 1 Wide Range Equivalence Ratio", "Richesse large bande sonde 1", "λ"},
	{"ff1241", "o2_o2l2_wide_eq_ratio", "O2 Sensor 2 Wide Range Equivalence Ratio", "Richesse large bande sonde 2", "λ"},
	{"ff1242", "o2_o2l3_wide_eq_ratio", "O2 Sensor 3 Wide Range Equivalence Ratio", "Richesse large bande sonde 3", "λ"},
	{"ff1243", "o2_o2l4_wide_eq_ratio", "O2 Sensor 4 Wide Range Equivalence Ratio", "Richesse large bande sonde 4", "λ"},
	{"ff1244", "o2_o2l5_wide_eq_ratio", "O2 Sensor 5 Wide Range Equivalence Ratio", "Richesse large bande sonde 5", "λ"},
	{"ff1245", "o2_o2l6_wide_eq_ratio", "O2 Sensor 6 Wide Range Equivalence Ratio", "Richesse large bande sonde 6", "λ"},
	{"ff1246", "o2_o2l7_wide_eq_ratio", "O2 Sensor 7 Wide Range Equivalence Ratio", "Richesse large bande sonde 7", "λ"},
	{"ff1247", "o2_o2l8_wide_eq_ratio", "O2 Sensor 8 Wide Range Equivalence Ratio", "Richesse large bande sonde 8", "λ"},
	{"ff1249", "air_fuel_ratio_measured", "Air Fuel Ratio(Measured)", "Rapport air/carburant (mesuré)", ":1"},
	{"ff124d", "air_fuel_ratio_commanded", "Air Fuel Ratio(Commanded)", "Rapport air/carburant (commandé)", ":1"},
	{"ff124f", "time_0_200kph", "0-200kph Time", "Temps 0-200 km/h", "s"},
	{"ff1257", "co2_gkm_instant", "CO₂ in g/km (Instantaneous)", "CO₂ en g/km (instantané)", "g/km"},
	{"ff1258", "co2_gkm_avg", "CO₂ in g/km (Average)", "CO₂ en g/km (moyenne)", "g/km"},
	{"ff125a", "fuel_flow_rate_min", "Fuel flow rate/minute", "Débit carburant/minute", "cc/min"},
	{"ff125c", "fuel_cost_trip", "Fuel cost (trip)", "Coût carburant (trajet)", "cost"},
	{"ff125d", "fuel_flow_rate_hr", "Fuel flow rate/hour", "Débit carburant/heure", "L/hr"},
	{"ff125e", "time_60_120mph", "60-120mph Time", "Temps 60-120 mph", "s"},
	{"ff125f", "time_60_80mph", "60-80mph Time", "Temps 60-80 mph", "s"},
	{"ff1260", "time_40_60mph", "40-60mph Time", "Temps 40-60 mph", "s"},
	{"ff1261", "time_80_100mph", "80-100mph Time", "Temps 80-100 mph", "s"},
	{"ff1263", "avg_trip_speed_moving", "Average trip speed(whilst moving only)", "Vitesse moyenne (en mouvement)", "km/h"},
	{"ff1264", "time_100_0kph", "100-0kph Time", "Temps 100-0 km/h", "s"},
	{"ff1265", "time_60_0mph", "60-0mph Time", "Temps 60-0 mph", "s"},
	{"ff1266", "trip_time_since_start", "Trip Time(Since journey start)", "Durée du trajet (depuis le départ)", "s"},
	{"ff1267", "trip_time_stationary", "Trip time(whilst stationary)", "Durée du trajet (à l'arrêt)", "s"},
	{"ff1268", "trip_time_moving", "Trip time(whilst moving)", "Durée du trajet (en mouvement)", "s"},
	{"ff1269", "volumetric_efficiency_calc", "Volumetric Efficiency (Calculated)", "Rendement volumétrique (calculé)", "%"},
	{"ff126a", "distance_to_empty_est", "Distance to empty (Estimated)", "Autonomie restante (estimée)", "km"},
	{"ff126b", "fuel_remaining_calc", "Fuel Remaining (Calculated from vehicle profile)", "Carburant restant (calculé)", "%"},
	{"ff126d", "cost_per_km_instant", "Cost per mile/km (Instant)", "Coût par km (instantané)", "€/km"},
	{"ff126e", "cost_per_km_trip", "Cost per mile/km (Trip)", "Coût par km (trajet)", "€/km"},
	{"ff1270", "barometer_android", "Barometer (on Android device)", "Baromètre (téléphone)", "mb"},
	{"ff1271", "fuel_used_trip", "Fuel used (trip)", "Carburant consommé (trajet)", "L"},
	{"ff1272", "avg_trip_speed_overall", "Average trip speed(whilst stopped or moving)", "Vitesse moyenne (globale)", "km/h"},
	{"ff1273", "engine_kw_wheels", "Engine kW (At the wheels)", "Puissance kW aux roues", "kW"},
	{"ff1275", "time_80_120kph", "80-120kph Time", "Temps 80-120 km/h", "s"},
	{"ff1276", "time_60_130mph", "60-130mph Time", "Temps 60-130 mph", "s"},
	{"ff1277", "time_0_30mph", "0-30mph Time", "Temps 0-30 mph", "s"},
	{"ff1278", "time_0_100mph", "0-100mph Time", "Temps 0-100 mph", "s"},
	{"ff1280", "time_100_200kph", "100-200kph Time", "Temps 100-200 km/h", "s"},
	{"ff1282", "egt_b1_s2", "Exhaust gas temp Bank 1 Sensor 2", "Température gaz d'échappement banc 1 capteur 2", "°C"},
	{"ff1283", "egt_b1_s3", "Exhaust gas temp Bank 1 Sensor 3", "Température gaz d'échappement banc 1 capteur 3", "°C"},
	{"ff1284", "egt_b1_s4", "Exhaust gas temp Bank 1 Sensor 4", "Température gaz d'échappement banc 1 capteur 4", "°C"},
	{"ff1286", "egt_b2_s2", "Exhaust gas temp Bank 2 Sensor 2", "Température gaz d'échappement banc 2 capteur 2", "°C"},
	{"ff1287", "egt_b2_s3", "Exhaust gas temp Bank 2 Sensor 3", "Température gaz d'échappement banc 2 capteur 3", "°C"},
	{"ff1288", "egt_b2_s4", "Exhaust gas temp Bank 2 Sensor 4", "Température gaz d'échappement banc 2 capteur 4", "°C"},
	{"ff128a", "nox_post_scr", "NOx Post SCR", "NOx après SCR", "ppm"},
	{"ff1296", "pct_city_driving", "Percentage of City driving", "Part de conduite en ville", "%"},
	{"ff1297", "pct_highway_driving", "Percentage of Highway driving", "Part de conduite sur autoroute", "%"},
	{"ff1298", "pct_idle_driving", "Percentage of Idle driving", "Part de ralenti", "%"},
	{"ff129a", "android_battery_level", "Android device Battery Level", "Batterie du téléphone", "%"},
	{"ff129b", "dpf_b1_outlet_temp", "DPF Bank 1 Outlet Temperature", "Température sortie FAP banc 1", "°C"},
	{"ff129c", "dpf_b2_inlet_temp", "DPF Bank 2 Inlet Temperature", "Température entrée FAP banc 2", "°C"},
	{"ff129d", "dpf_b2_outlet_temp", "DPF Bank 2 Outlet Temperature", "Température sortie FAP banc 2", "°C"},
	{"ff129e", "maf_sensor_b", "Mass air flow sensor B", "Débitmètre d'air B", "g/s"},

	{"ff12a1", "intake_manifold_abs_pressure_b", "Intake Manifold Abs Pressure B", "Pression absolue collecteur B", "kPa"},
	{"ff12a4", "boost_pressure_commanded_b", "Boost Pressure Commanded B", "Pression de suralimentation commandée B", "kPa"},
	{"ff12a5", "boost_pressure_sensor_a", "Boost Pressure Sensor A", "Capteur de suralimentation A", "kPa"},
	{"ff12a6", "boost_pressure_sensor_b", "Boost Pressure Sensor B", "Capteur de suralimentation B", "kPa"},
	{"ff12ab", "exhaust_pressure_b2", "Exhaust Pressure Bank 2", "Pression d'échappement banc 2", "kPa"},

	{"ff12b0", "dpf_b1_inlet_pressure", "DPF Bank 1 Inlet Pressure", "Pression entrée FAP banc 1", "kPa"},
	{"ff12b1", "dpf_b1_outlet_pressure", "DPF Bank 1 Outlet Pressure", "Pression sortie FAP banc 1", "kPa"},
	{"ff12b2", "dpf_b2_inlet_pressure", "DPF Bank 2 Inlet Pressure", "Pression entrée FAP banc 2", "kPa"},
	{"ff12b3", "dpf_b2_outlet_pressure", "DPF Bank 2 Outlet Pressure", "Pression sortie FAP banc 2", "kPa"},
	{"ff12b4", "hybrid_ev_batt_current", "Hybrid/EV System Battery Current", "Courant batterie hybride/VE", "A"},
	{"ff12b5", "hybrid_ev_batt_power", "Hybrid/EV System Battery Power", "Puissance batterie hybride/VE", "W"},
	{"ff12b6", "positive_kinetic_energy_pke", "Positive Kinetic Energy (PKE)", "Énergie cinétique positive (PKE)", "km/hr^2"},

	{"ff5201", "mpg_long_term_avg", "Miles Per Gallon(Long Term Average)", "Miles par gallon (moyenne long terme)", "mpg"},
	{"ff5202", "kpl_long_term_avg", "Kilometers Per Litre(Long Term Average)", "Kilomètres par litre (moyenne long terme)", "kpl"},
	{"ff5203", "l_per_100_long_term_avg", "Litres Per 100 Kilometer(Long Term Average)", "Litres aux 100 km (moyenne long terme)", "L/100km"},
}
