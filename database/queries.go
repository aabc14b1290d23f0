package database

// SQL for the permission store. Table and column names belong to the
// owning security system and are consumed as-is.

const (
	listDomainsQuery = `
		SELECT DMN_ID
		FROM DOMAIN
		ORDER BY DMN_ID`

	fetchPermissionsQuery = `
		SELECT EXT_ID, NAME, ACTION
		FROM PERMISSION
		WHERE EXT_ID = ANY($1)`

	countPermissionQuery = `
		SELECT COUNT(*)
		FROM PERMISSION
		WHERE EXT_ID = $1 AND NAME = $2`

	updatePermissionQuery = `
		UPDATE PERMISSION
		SET ACTION = $1
		WHERE EXT_ID = $2 AND NAME = $3`

	insertPermissionQuery = `
		INSERT INTO PERMISSION (EXT_ID, CLASS, NAME, ACTION)
		VALUES ($1, $2, $3, $4)`

	deletePermissionQuery = `
		DELETE FROM PERMISSION
		WHERE EXT_ID = $1 AND NAME = $2 AND ACTION = $3`

	insertAuditQuery = `
		INSERT INTO RECONCILE_LOG (ENTRY_ID, APPLIED_AT, OPERATION, EXT_ID, NAME, ACTION)
		VALUES ($1, $2, $3, $4, $5, $6)`
)
